package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/robolab-go/internal/domain/account"
	"github.com/linskybing/robolab-go/pkg/types"
)

const (
	ClaimsKey    = "claims"
	PrincipalKey = "principal"
)

var ErrNoPrincipal = errors.New("principal not found in context")

// SetPrincipal stores the resolved session identity for downstream handlers.
func SetPrincipal(c *gin.Context, claims *types.Claims, p account.Principal) {
	c.Set(ClaimsKey, claims)
	c.Set(PrincipalKey, p)
}

var GetPrincipalFromContext = func(c *gin.Context) (account.Principal, error) {
	v, exists := c.Get(PrincipalKey)
	if !exists {
		return account.Principal{}, ErrNoPrincipal
	}
	p, ok := v.(account.Principal)
	if !ok {
		return account.Principal{}, errors.New("invalid principal type")
	}
	return p, nil
}

var GetClaimsFromContext = func(c *gin.Context) (*types.Claims, error) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, errors.New("user claims not found in context")
	}
	claims, ok := v.(*types.Claims)
	if !ok {
		return nil, errors.New("invalid user claims type")
	}
	return claims, nil
}
