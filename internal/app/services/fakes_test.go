package services

import (
	"context"
	"mime/multipart"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ybamri/recycleapp/internal/app/models"
	"github.com/ybamri/recycleapp/internal/app/models/dto"
	"github.com/ybamri/recycleapp/internal/db"
	"github.com/ybamri/recycleapp/internal/pkg/apperrors"
)

// In-memory fakes backing the service tests. They mirror the SQL semantics
// of the real repositories, including the conditional contribution guard.

type fakeTxRunner struct{}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserRepo) add(user *models.User) *models.User {
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, apperrors.ErrEmailAlreadyExists
		}
	}
	return f.add(user), nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	for _, user := range f.users {
		if user.VerificationToken != nil && *user.VerificationToken == token {
			return user, nil
		}
	}
	return nil, apperrors.ErrInvalidVerificationToken
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) SetVerified(ctx context.Context, userID int64) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.IsVerified = true
	user.VerificationToken = nil
	return nil
}

func (f *fakeUserRepo) GetAll(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeDefiRepo struct {
	defis  map[int64]*models.Defi
	nextID int64
}

func newFakeDefiRepo() *fakeDefiRepo {
	return &fakeDefiRepo{defis: make(map[int64]*models.Defi), nextID: 1}
}

func (f *fakeDefiRepo) Create(ctx context.Context, defi *models.Defi) (*models.Defi, error) {
	defi.ID = f.nextID
	f.nextID++
	f.defis[defi.ID] = defi
	return defi, nil
}

func (f *fakeDefiRepo) GetByID(ctx context.Context, id int64) (*models.Defi, error) {
	defi, ok := f.defis[id]
	if !ok {
		return nil, apperrors.ErrDefiNotFound
	}
	return defi, nil
}

func (f *fakeDefiRepo) GetByIDWithParticipations(ctx context.Context, id int64) (*models.Defi, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeDefiRepo) GetAll(ctx context.Context) ([]*models.Defi, error) {
	var defis []*models.Defi
	for _, defi := range f.defis {
		defis = append(defis, defi)
	}
	return defis, nil
}

func (f *fakeDefiRepo) Update(ctx context.Context, defi *models.Defi) error {
	if _, ok := f.defis[defi.ID]; !ok {
		return apperrors.ErrDefiNotFound
	}
	f.defis[defi.ID] = defi
	return nil
}

func (f *fakeDefiRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.defis[id]; !ok {
		return apperrors.ErrDefiNotFound
	}
	delete(f.defis, id)
	return nil
}

func (f *fakeDefiRepo) ApplyContribution(ctx context.Context, tx pgx.Tx, defiID int64, quantity float64) error {
	defi, ok := f.defis[defiID]
	if !ok {
		return apperrors.ErrDefiNotFound
	}
	if defi.CurrentAmount+quantity > defi.Target {
		return apperrors.ErrQuantityExceedsRemaining
	}
	defi.CurrentAmount += quantity
	if defi.CurrentAmount >= defi.Target {
		defi.Status = models.DefiStatusComplete
	}
	return nil
}

func (f *fakeDefiRepo) ReverseContribution(ctx context.Context, tx pgx.Tx, defiID int64, quantity float64) error {
	defi, ok := f.defis[defiID]
	if !ok {
		return apperrors.ErrDefiNotFound
	}
	defi.CurrentAmount -= quantity
	if defi.CurrentAmount < 0 {
		defi.CurrentAmount = 0
	}
	defi.Status = models.ComputeDefiStatus(defi.CurrentAmount, defi.Target)
	return nil
}

type fakeParticipationRepo struct {
	participations map[int64]*models.Participation
	nextID         int64
}

func newFakeParticipationRepo() *fakeParticipationRepo {
	return &fakeParticipationRepo{participations: make(map[int64]*models.Participation), nextID: 1}
}

func (f *fakeParticipationRepo) CreateTx(ctx context.Context, tx pgx.Tx, participation *models.Participation) error {
	participation.ID = f.nextID
	f.nextID++
	participation.ParticipatedAt = time.Now()
	f.participations[participation.ID] = participation
	return nil
}

func (f *fakeParticipationRepo) GetByID(ctx context.Context, id int64) (*models.Participation, error) {
	participation, ok := f.participations[id]
	if !ok {
		return nil, apperrors.ErrParticipationNotFound
	}
	return participation, nil
}

func (f *fakeParticipationRepo) GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*models.Participation, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeParticipationRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.Participation, error) {
	var participations []*models.Participation
	for _, participation := range f.participations {
		if participation.UserID == userID {
			participations = append(participations, participation)
		}
	}
	sort.Slice(participations, func(i, j int) bool {
		return participations[i].ParticipatedAt.After(participations[j].ParticipatedAt)
	})
	return participations, nil
}

func (f *fakeParticipationRepo) GetByDefiID(ctx context.Context, defiID int64) ([]*models.Participation, error) {
	var participations []*models.Participation
	for _, participation := range f.participations {
		if participation.DefiID == defiID {
			participations = append(participations, participation)
		}
	}
	sort.Slice(participations, func(i, j int) bool {
		return participations[i].ParticipatedAt.After(participations[j].ParticipatedAt)
	})
	return participations, nil
}

func (f *fakeParticipationRepo) DeleteTx(ctx context.Context, tx pgx.Tx, id int64) error {
	if _, ok := f.participations[id]; !ok {
		return apperrors.ErrParticipationNotFound
	}
	delete(f.participations, id)
	return nil
}

type fakeArticleRepo struct {
	articles map[string]*models.Article
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: make(map[string]*models.Article)}
}

func (f *fakeArticleRepo) Create(ctx context.Context, article *models.Article) (*models.Article, error) {
	article.CreatedAt = time.Now()
	f.articles[article.ID] = article
	return article, nil
}

func (f *fakeArticleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	article, ok := f.articles[id]
	if !ok {
		return nil, apperrors.ErrArticleNotFound
	}
	return article, nil
}

func (f *fakeArticleRepo) GetAll(ctx context.Context) ([]*models.Article, error) {
	var articles []*models.Article
	for _, article := range f.articles {
		articles = append(articles, article)
	}
	return articles, nil
}

func (f *fakeArticleRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.Article, error) {
	var articles []*models.Article
	for _, article := range f.articles {
		if article.UserID == userID {
			articles = append(articles, article)
		}
	}
	return articles, nil
}

func (f *fakeArticleRepo) Update(ctx context.Context, article *models.Article) error {
	if _, ok := f.articles[article.ID]; !ok {
		return apperrors.ErrArticleNotFound
	}
	f.articles[article.ID] = article
	return nil
}

func (f *fakeArticleRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.articles[id]; !ok {
		return apperrors.ErrArticleNotFound
	}
	delete(f.articles, id)
	return nil
}

type fakeStorage struct {
	saved   []string
	deleted []string
}

func (f *fakeStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil
	}
	path := "uploads/" + fileHeader.Filename
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeStorage) DeleteFile(filePath string) error {
	f.deleted = append(f.deleted, filePath)
	return nil
}

type fakeEmailService struct {
	sent []string // recipient addresses
}

func (f *fakeEmailService) SendVerificationEmail(toEmail, toName, token string) error {
	f.sent = append(f.sent, toEmail)
	return nil
}

type fakeMessageRepo struct {
	messages map[int64]*models.Message
	nextID   int64
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[int64]*models.Message), nextID: 1}
}

func (f *fakeMessageRepo) Create(ctx context.Context, message *models.Message) (*models.Message, error) {
	message.ID = f.nextID
	f.nextID++
	message.CreatedAt = time.Now().Add(time.Duration(message.ID) * time.Millisecond)
	f.messages[message.ID] = message
	return message, nil
}

func (f *fakeMessageRepo) GetConversation(ctx context.Context, userA, userB int64) ([]*models.Message, error) {
	var messages []*models.Message
	for _, message := range f.messages {
		if (message.SenderID == userA && message.ReceiverID == userB) ||
			(message.SenderID == userB && message.ReceiverID == userA) {
			messages = append(messages, message)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (f *fakeMessageRepo) GetAdminConversations(ctx context.Context, adminID int64) ([]*dto.ConversationSummary, error) {
	byOther := make(map[int64]*dto.ConversationSummary)
	for _, message := range f.messages {
		var otherID int64
		switch adminID {
		case message.SenderID:
			otherID = message.ReceiverID
		case message.ReceiverID:
			otherID = message.SenderID
		default:
			continue
		}
		summary, ok := byOther[otherID]
		if !ok {
			summary = &dto.ConversationSummary{UserID: otherID}
			byOther[otherID] = summary
		}
		if message.CreatedAt.After(summary.LastMessageTime) {
			summary.LastMessage = message.Content
			summary.LastMessageTime = message.CreatedAt
		}
		if message.ReceiverID == adminID && !message.IsRead {
			summary.UnreadCount++
		}
	}
	var summaries []*dto.ConversationSummary
	for _, summary := range byOther {
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastMessageTime.After(summaries[j].LastMessageTime)
	})
	return summaries, nil
}

func (f *fakeMessageRepo) MarkConversationRead(ctx context.Context, senderID, receiverID int64) error {
	for _, message := range f.messages {
		if message.SenderID == senderID && message.ReceiverID == receiverID {
			message.IsRead = true
		}
	}
	return nil
}
