package main

// General API documentation for swaggo. Run `swag init -g cmd/cropd/docs.go` to regenerate docs.
//
// @title           cropd API
// @version         1.0
// @description     HTTP API for crop leaf disease classification.
//
// @contact.name   cropd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
