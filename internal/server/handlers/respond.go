package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aminedz/microimport/internal/repository/mongodb"
)

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondStorageError maps repository errors onto HTTP statuses.
func respondStorageError(c *gin.Context, err error) {
	if errors.Is(err, mongodb.ErrNotFound) {
		respondError(c, http.StatusNotFound, "resource not found")
		return
	}
	respondError(c, http.StatusInternalServerError, "internal error")
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
