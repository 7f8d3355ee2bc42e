package service

import (
	"context"
	"errors"
	"testing"

	"inkpulse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn             func(context.Context, *models.Post) error
	getByIDFn            func(context.Context, uint, uint) (*models.Post, bool, error)
	getForWriteFn        func(context.Context, uint) (*models.Post, error)
	listPublishedFn      func(context.Context, uint) ([]*models.Post, bool, error)
	listDraftsByAuthorFn func(context.Context, uint) ([]*models.Post, error)
	trendingFn           func(context.Context, int) ([]*models.Post, error)
	updateFn             func(context.Context, *models.Post) error
	deleteFn             func(context.Context, uint) error
	isLikedFn            func(context.Context, uint, uint) (bool, error)
	likeFn               func(context.Context, uint, uint) error
	unlikeFn             func(context.Context, uint, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, bool, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetForWrite(ctx context.Context, id uint) (*models.Post, error) {
	return s.getForWriteFn(ctx, id)
}
func (s *postRepoStub) ListPublished(ctx context.Context, currentUserID uint) ([]*models.Post, bool, error) {
	return s.listPublishedFn(ctx, currentUserID)
}
func (s *postRepoStub) ListDraftsByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	return s.listDraftsByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) Trending(ctx context.Context, limit int) ([]*models.Post, error) {
	return s.trendingFn(ctx, limit)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, _, _ uint) (*models.Post, bool, error) {
			return &models.Post{}, false, nil
		},
		getForWriteFn: func(_ context.Context, _ uint) (*models.Post, error) {
			return &models.Post{}, nil
		},
		listPublishedFn: func(_ context.Context, _ uint) ([]*models.Post, bool, error) {
			return nil, false, nil
		},
		listDraftsByAuthorFn: func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		trendingFn:           func(_ context.Context, _ int) ([]*models.Post, error) { return nil, nil },
		updateFn:             func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:             func(_ context.Context, _ uint) error { return nil },
		isLikedFn:            func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:               func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:             func(_ context.Context, _, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByEmailFn     func(context.Context, string) (*models.User, error)
	createFn         func(context.Context, *models.User) error
	updateFn         func(context.Context, *models.User) error
	updatePasswordFn func(context.Context, uint, string) error
	deleteByEmailFn  func(context.Context, string) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdatePassword(ctx context.Context, id uint, hashed string) error {
	return s.updatePasswordFn(ctx, id, hashed)
}
func (s *userRepoStub) DeleteByEmail(ctx context.Context, email string) error {
	return s.deleteByEmailFn(ctx, email)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:        func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:     func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:         func(_ context.Context, _ *models.User) error { return nil },
		updateFn:         func(_ context.Context, _ *models.User) error { return nil },
		updatePasswordFn: func(_ context.Context, _ uint, _ string) error { return nil },
		deleteByEmailFn:  func(_ context.Context, _ string) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, _ uint) (*models.Comment, error) { return nil, gorm.ErrRecordNotFound },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// mailerStub records sent messages.
type mailerStub struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *mailerStub) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

// assertAppError asserts that err is an AppError with the given code.
func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
