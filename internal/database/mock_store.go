// file: internal/database/mock_store.go
// version: 1.1.0
// guid: 9b1d3f5a-7c0e-42b4-88d6-3f5a7c9e1b42

package database

import (
	"github.com/stretchr/testify/mock"

	"github.com/booktime/booktime/internal/models"
)

// MockStore is a testify mock of the Store interface for service tests.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockStore) Reset() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockStore) CreateBook(book *models.Book) (*models.Book, error) {
	args := m.Called(book)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockStore) GetBookByID(id string) (*models.Book, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockStore) GetAllBooks(limit, offset int) ([]models.Book, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockStore) UpdateBook(id string, book *models.Book) (*models.Book, error) {
	args := m.Called(id, book)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockStore) DeleteBook(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStore) SearchBooks(query string, limit, offset int) ([]models.Book, error) {
	args := m.Called(query, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockStore) GetBooksBySaga(saga string) ([]models.Book, error) {
	args := m.Called(saga)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockStore) CountBooks() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockStore) GetUserPreference(key string) (string, bool, error) {
	args := m.Called(key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStore) SetUserPreference(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}
