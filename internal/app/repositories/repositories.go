package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          *UserRepository
	ArticleRepository       *ArticleRepository
	DefiRepository          *DefiRepository
	ParticipationRepository *ParticipationRepository
	MessageRepository       *MessageRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(db),
		ArticleRepository:       NewArticleRepository(db),
		DefiRepository:          NewDefiRepository(db),
		ParticipationRepository: NewParticipationRepository(db),
		MessageRepository:       NewMessageRepository(db),
	}
}
