package v1

// BasePath is the route prefix of the v1 REST API
const BasePath = "/api/v1/rsa"
