package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/videoclass/internal/config"
	"github.com/magabrotheeeer/videoclass/internal/migrations"
	"github.com/magabrotheeeer/videoclass/internal/models"
)

// setupTestStorage поднимает PostgreSQL в контейнере и накатывает миграции.
func setupTestStorage(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, nat.Port("5432/tcp"))
	require.NoError(t, err, "Failed to get port")

	connStr := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	storage, err := New(ctx, config.Storage{
		ConnectionString: connStr,
		MaxOpenConns:     10,
		MaxIdleConns:     5,
		ConnMaxIdleTime:  10 * time.Second,
		ConnectTimeout:   5 * time.Second,
	})
	require.NoError(t, err, "Failed to create storage")
	t.Cleanup(func() { _ = storage.Close() })

	root, err := filepath.Abs("../..")
	require.NoError(t, err)
	_, err = migrations.Run(storage.DB.DB, filepath.Join(root, "migrations"))
	require.NoError(t, err)

	return storage
}

// testDataFactory создает тестовые записи через публичные методы хранилища.
type testDataFactory struct {
	storage *Storage
}

func (f *testDataFactory) student(t *testing.T, email string) *models.User {
	t.Helper()
	u := &models.User{Name: "Student " + email, Email: email, PasswordHash: "hash", Role: models.RoleStudent}
	require.NoError(t, f.storage.CreateUser(context.Background(), u))
	return u
}

func (f *testDataFactory) class(t *testing.T, title, classType, category string) *models.Class {
	t.Helper()
	c := &models.Class{
		Title:       title,
		Description: "About " + title,
		Instructor:  "Jane Doe",
		Type:        classType,
		VideoURL:    "https://videos.example.com/" + title,
		Thumbnail:   models.DefaultThumbnail,
		Duration:    "1h",
		IsActive:    true,
		Category:    category,
	}
	if classType == models.ClassTypeLive {
		at := time.Now().Add(24 * time.Hour).UTC()
		c.Schedule = &at
	}
	require.NoError(t, f.storage.CreateClass(context.Background(), c))
	return c
}

func (f *testDataFactory) enroll(t *testing.T, userID, classID string) {
	t.Helper()
	_, err := f.storage.Enroll(context.Background(), userID, classID)
	require.NoError(t, err)
}
