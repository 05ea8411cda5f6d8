package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/go-yaro/bank-ledger/pkg/web"
)

// PrincipalHeader carries the authenticated principal, set by the
// authentication layer in front of this service.
const PrincipalHeader = "X-Principal"

// PrincipalKey is the gin context key under which the principal is stored.
const PrincipalKey = "request_principal"

var errMissingPrincipal = errors.New("missing principal")

// Principal makes the acting principal explicit on every request. Requests
// without one are rejected before reaching any handler, so handlers can rely
// on MustGet. The ledger core never reads ambient session state.
func Principal() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := c.Request.Header.Get(PrincipalHeader)
		if principal == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(errMissingPrincipal))
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// AddPrincipal sets the principal header on a test request.
func AddPrincipal(t *testing.T, request *http.Request, principal string) {
	t.Helper()
	request.Header.Set(PrincipalHeader, principal)
}
