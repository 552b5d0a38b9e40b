// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response utilities shared by all endpoints. Success
// responses are written directly; failures are never formatted here —
// handlers attach an *apierr.Error to the Gin context and abort, and the
// terminal error-translation middleware is the single place producing
// error bodies. This keeps every error response in one uniform shape, no
// matter which stage detected the problem.
package handlers

import "github.com/gin-gonic/gin"

// ok writes a success JSON response with the given status code.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// abortWithError hands an error to the pipeline's terminal translator and
// stops further processing. The translator decides status, body shape, and
// logging level.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
