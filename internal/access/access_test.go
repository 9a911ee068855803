package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskup-dev/taskup/internal/models"
)

func TestIsOwner(t *testing.T) {
	project := models.Project{OwnerID: 7}

	assert.True(t, IsOwner(7, project))
	assert.False(t, IsOwner(8, project))
}

func TestIsMember(t *testing.T) {
	members := []models.ProjectMember{
		{UserID: 2},
		{UserID: 3},
	}

	assert.True(t, IsMember(2, members))
	assert.False(t, IsMember(4, members))
	assert.False(t, IsMember(4, nil))
}

func TestHasAccess(t *testing.T) {
	project := models.Project{OwnerID: 7}
	members := []models.ProjectMember{{UserID: 2}}

	assert.True(t, HasAccess(7, project, nil))
	assert.True(t, HasAccess(2, project, members))
	assert.False(t, HasAccess(9, project, members))
}
