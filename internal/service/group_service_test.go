package service

import (
	"context"
	"testing"

	"github.com/momtheprogram/api-final-writers-blog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestListGroups(t *testing.T) {
	groups := noopGroupRepo()
	groups.listFn = func(_ context.Context) ([]*models.Group, error) {
		return []*models.Group{{ID: 1, Title: "Travel", Slug: "travel"}}, nil
	}
	svc := NewGroupService(groups)

	got, err := svc.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "travel", got[0].Slug)
}

func TestGetGroupMapsMissingRecord(t *testing.T) {
	groups := noopGroupRepo()
	groups.getByIDFn = func(_ context.Context, _ uint) (*models.Group, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewGroupService(groups)

	_, err := svc.GetGroup(context.Background(), 9)
	assertNotFoundError(t, err)
}
