package memory

import (
	"testing"

	"github.com/linskybing/robolab-go/internal/repository"
	"github.com/linskybing/robolab-go/internal/repository/repotest"
	"github.com/stretchr/testify/require"
)

func TestMemoryGateway(t *testing.T) {
	repotest.Run(t, func(t *testing.T) *repository.Repos {
		repos, err := NewRepositories()
		require.NoError(t, err)
		return repos
	})
}
