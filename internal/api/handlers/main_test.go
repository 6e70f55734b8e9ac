package handlers_test

import (
	"os"
	"testing"

	"authledger/internal/validation"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validation.Initialize(6); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
