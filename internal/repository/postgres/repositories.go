package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/repository"
)

// NewRepositories creates a new set of repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Draft:      NewDraftRepository(db, logger),
		DraftEvent: NewDraftEventRepository(db, logger),
	}
}
