// @title           linkdeck API
// @version         1.0
// @description     Self-hosted bookmark service with automatic page metadata enrichment.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerToken
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and your API token. Example: "Bearer ld_xxx"
package api
