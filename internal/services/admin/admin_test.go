package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/videoclass/internal/lib/apperr"
	"github.com/magabrotheeeer/videoclass/internal/models"
	services "github.com/magabrotheeeer/videoclass/internal/services/admin"
	"github.com/magabrotheeeer/videoclass/internal/storage"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.DashboardStats), args.Error(1)
}

func (m *RepoMock) ListStudents(ctx context.Context, limit int) ([]*models.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *RepoMock) PopularClasses(ctx context.Context, limit int) ([]*models.PopularClass, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PopularClass), args.Error(1)
}

func (m *RepoMock) CategoryStats(ctx context.Context) ([]models.CategoryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryCount), args.Error(1)
}

func (m *RepoMock) ListAllClasses(ctx context.Context) ([]*models.Class, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Class), args.Error(1)
}

func (m *RepoMock) GetClass(ctx context.Context, id string) (*models.Class, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Class), args.Error(1)
}

func (m *RepoMock) CreateClass(ctx context.Context, c *models.Class) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = "new-class"
	}
	return args.Error(0)
}

func (m *RepoMock) UpdateClass(ctx context.Context, id string, c models.Class) (*models.Class, error) {
	args := m.Called(ctx, id, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Class), args.Error(1)
}

func (m *RepoMock) DeleteClass(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RepoMock) UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RepoMock) CreateAdminIfNone(ctx context.Context, u *models.User) (bool, error) {
	args := m.Called(ctx, u)
	return args.Bool(0), args.Error(1)
}

type plainHasher struct{}

func (plainHasher) Hash(raw string) (string, error) { return "hashed:" + raw, nil }

func recordedInput() models.ClassInput {
	return models.ClassInput{
		Title:       "Intro to Go",
		Description: "Basics",
		Instructor:  "Rob",
		Type:        models.ClassTypeRecorded,
		VideoURL:    "https://videos.example.com/go.mp4",
		Duration:    "45 min",
		Category:    "programming",
	}
}

func TestAdminService_Dashboard(t *testing.T) {
	repo := new(RepoMock)
	svc := services.NewAdminService(repo, plainHasher{})

	stats := models.DashboardStats{TotalUsers: 2, TotalClasses: 3, LiveClasses: 1, TotalViews: 42}
	recent := []*models.User{{ID: "u2"}, {ID: "u1"}}
	popular := []*models.PopularClass{{ID: "c1", Views: 40, EnrolledStudents: []string{"u1"}}}
	categories := []models.CategoryCount{{Category: "programming", Count: 3}}

	repo.On("DashboardStats", mock.Anything).Return(stats, nil).Once()
	repo.On("ListStudents", mock.Anything, 5).Return(recent, nil).Once()
	repo.On("PopularClasses", mock.Anything, 5).Return(popular, nil).Once()
	repo.On("CategoryStats", mock.Anything).Return(categories, nil).Once()

	got, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.Dashboard{
		Stats:          stats,
		RecentUsers:    recent,
		PopularClasses: popular,
		CategoryStats:  categories,
	}, got)
	repo.AssertExpectations(t)
}

func TestAdminService_DashboardError(t *testing.T) {
	repo := new(RepoMock)
	svc := services.NewAdminService(repo, plainHasher{})

	repo.On("DashboardStats", mock.Anything).Return(models.DashboardStats{}, errors.New("db down")).Once()

	_, err := svc.Dashboard(context.Background())
	assert.ErrorContains(t, err, "db down")
	repo.AssertExpectations(t)
}

func TestAdminService_ClassCRUD(t *testing.T) {
	t.Run("create applies defaults", func(t *testing.T) {
		repo := new(RepoMock)
		svc := services.NewAdminService(repo, plainHasher{})
		repo.On("CreateClass", mock.Anything, mock.MatchedBy(func(c *models.Class) bool {
			return c.Thumbnail == models.DefaultThumbnail && c.IsActive && c.Title == "Intro to Go"
		})).Return(nil).Once()

		got, err := svc.CreateClass(context.Background(), recordedInput())
		require.NoError(t, err)
		assert.Equal(t, "new-class", got.ID)
		repo.AssertExpectations(t)
	})

	t.Run("create rejects blank title", func(t *testing.T) {
		svc := services.NewAdminService(new(RepoMock), plainHasher{})
		in := recordedInput()
		in.Title = "   "
		_, err := svc.CreateClass(context.Background(), in)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("get keeps views", func(t *testing.T) {
		repo := new(RepoMock)
		svc := services.NewAdminService(repo, plainHasher{})
		repo.On("GetClass", mock.Anything, "c1").
			Return(&models.Class{ID: "c1", Views: 3, EnrolledStudents: []string{"u1"}}, nil).Once()
		repo.On("GetClass", mock.Anything, "missing").Return(nil, storage.ErrNotFound).Once()

		got, err := svc.GetClass(context.Background(), "c1")
		require.NoError(t, err)
		assert.Equal(t, int64(3), got.Views)
		assert.Equal(t, []string{"u1"}, got.EnrolledStudents)

		_, err = svc.GetClass(context.Background(), "missing")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		repo.AssertExpectations(t)
	})

	t.Run("update unknown", func(t *testing.T) {
		repo := new(RepoMock)
		svc := services.NewAdminService(repo, plainHasher{})
		repo.On("UpdateClass", mock.Anything, "missing", mock.Anything).Return(nil, storage.ErrNotFound).Once()

		_, err := svc.UpdateClass(context.Background(), "missing", recordedInput())
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("update live with schedule", func(t *testing.T) {
		repo := new(RepoMock)
		svc := services.NewAdminService(repo, plainHasher{})
		at := time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC)
		in := recordedInput()
		in.Type = models.ClassTypeLive
		in.Schedule = models.Schedule{Time: at}
		repo.On("UpdateClass", mock.Anything, "c1", mock.MatchedBy(func(c models.Class) bool {
			return c.Type == models.ClassTypeLive && c.Schedule != nil && c.Schedule.Equal(at)
		})).Return(&models.Class{ID: "c1", Type: models.ClassTypeLive}, nil).Once()

		got, err := svc.UpdateClass(context.Background(), "c1", in)
		require.NoError(t, err)
		assert.Equal(t, "c1", got.ID)
		repo.AssertExpectations(t)
	})

	t.Run("delete", func(t *testing.T) {
		repo := new(RepoMock)
		svc := services.NewAdminService(repo, plainHasher{})
		repo.On("DeleteClass", mock.Anything, "c1").Return(nil).Once()
		repo.On("DeleteClass", mock.Anything, "c1").Return(storage.ErrNotFound).Once()

		require.NoError(t, svc.DeleteClass(context.Background(), "c1"))
		assert.ErrorIs(t, svc.DeleteClass(context.Background(), "c1"), apperr.ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		repo := new(RepoMock)
		svc := services.NewAdminService(repo, plainHasher{})
		repo.On("ListAllClasses", mock.Anything).Return([]*models.Class{{ID: "c1"}, {ID: "c2"}}, nil).Once()

		got, err := svc.ListClasses(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestAdminService_UserManagement(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantKind error
	}{
		{name: "success"},
		{name: "unknown user", repoErr: storage.ErrNotFound, wantKind: apperr.ErrNotFound},
		{name: "email taken", repoErr: storage.ErrDuplicate, wantKind: apperr.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := services.NewAdminService(repo, plainHasher{})

			upd := models.UserUpdate{Name: "Ann Lee", Email: "ann@x.com", Role: models.RoleAdmin}
			if tt.repoErr != nil {
				repo.On("UpdateUser", mock.Anything, "u1", upd).Return(nil, tt.repoErr).Once()
			} else {
				repo.On("UpdateUser", mock.Anything, "u1", upd).Return(&models.User{ID: "u1", Role: models.RoleAdmin}, nil).Once()
			}

			got, err := svc.UpdateUser(context.Background(), "u1", models.UserUpdateRequest{
				Name: " Ann Lee ", Email: " ANN@x.com", Role: models.RoleAdmin,
			})
			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, models.RoleAdmin, got.Role)
			}
			repo.AssertExpectations(t)
		})
	}

	t.Run("list and delete", func(t *testing.T) {
		repo := new(RepoMock)
		svc := services.NewAdminService(repo, plainHasher{})
		repo.On("ListStudents", mock.Anything, 0).Return([]*models.User{{ID: "u1"}}, nil).Once()
		repo.On("DeleteUser", mock.Anything, "u1").Return(nil).Once()
		repo.On("DeleteUser", mock.Anything, "u2").Return(storage.ErrNotFound).Once()

		users, err := svc.ListUsers(context.Background())
		require.NoError(t, err)
		assert.Len(t, users, 1)
		require.NoError(t, svc.DeleteUser(context.Background(), "u1"))
		assert.ErrorIs(t, svc.DeleteUser(context.Background(), "u2"), apperr.ErrNotFound)
	})
}

// onceAdminRepo создает администратора только при первом вызове.
type onceAdminRepo struct {
	RepoMock
	mu    sync.Mutex
	admin *models.User
}

func (r *onceAdminRepo) CreateAdminIfNone(_ context.Context, u *models.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.admin != nil {
		return false, nil
	}
	r.admin = u
	return true, nil
}

func TestAdminService_SetupSucceedsOnce(t *testing.T) {
	repo := &onceAdminRepo{}
	svc := services.NewAdminService(repo, plainHasher{})

	err := svc.Setup(context.Background(), models.SetupRequest{Name: "Root", Email: "Root@X.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "root@x.com", repo.admin.Email)
	assert.Equal(t, models.RoleAdmin, repo.admin.Role)
	assert.Equal(t, "hashed:secret1", repo.admin.PasswordHash)

	err = svc.Setup(context.Background(), models.SetupRequest{Name: "Other", Email: "other@x.com", Password: "another1"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	msg, _ := apperr.Message(err)
	assert.Equal(t, "Admin already exists", msg)
}

func TestAdminService_SetupDuplicateEmail(t *testing.T) {
	repo := new(RepoMock)
	svc := services.NewAdminService(repo, plainHasher{})
	repo.On("CreateAdminIfNone", mock.Anything, mock.Anything).Return(false, storage.ErrDuplicate).Once()

	err := svc.Setup(context.Background(), models.SetupRequest{Name: "Root", Email: "ann@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	repo.AssertExpectations(t)
}
