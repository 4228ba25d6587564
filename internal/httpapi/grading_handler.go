package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"rewear-be/internal/grading"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleGradeProduct(c *gin.Context) {
	var req struct {
		ProductID int `json:"product_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	result, err := s.grader.GradeProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		var invalid *grading.InvalidResponseError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success":        false,
				"error":          "invalid AI response",
				"debug_response": invalid.Raw,
			})
			return
		}
		failFor(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"result": result})
}

func (s *Server) handleCheckGrade(c *gin.Context) {
	id, err := strconv.Atoi(c.Query("product_id"))
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	grade, err := s.grader.CheckGrade(c.Request.Context(), id)
	if err != nil {
		failFor(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"product_id": id, "grade": grade, "graded": grade != nil})
}
