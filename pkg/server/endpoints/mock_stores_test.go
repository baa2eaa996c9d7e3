package endpoints

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/apidashio/apidash/pkg/model"
	"github.com/apidashio/apidash/pkg/server/store"
)

// MockEndpointsStore implements store.EndpointsStore for testing using testify/mock
type MockEndpointsStore struct {
	mock.Mock
}

func NewMockEndpointsStore() *MockEndpointsStore {
	return &MockEndpointsStore{}
}

func (m *MockEndpointsStore) ListEndpoints(ownerID uuid.UUID, limit int) ([]model.Endpoint, error) {
	args := m.Called(ownerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Endpoint), args.Error(1)
}

func (m *MockEndpointsStore) FetchEndpoint(ownerID, id uuid.UUID) (*model.Endpoint, error) {
	args := m.Called(ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Endpoint), args.Error(1)
}

func (m *MockEndpointsStore) CreateEndpoint(endpoint *model.Endpoint) error {
	args := m.Called(endpoint)
	return args.Error(0)
}

func (m *MockEndpointsStore) UpdateEndpoint(ownerID, id uuid.UUID, update store.EndpointUpdate) (*model.Endpoint, error) {
	args := m.Called(ownerID, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Endpoint), args.Error(1)
}

func (m *MockEndpointsStore) DeleteEndpoint(ownerID, id uuid.UUID) error {
	args := m.Called(ownerID, id)
	return args.Error(0)
}

// MockKeysStore implements store.KeysStore for testing using testify/mock
type MockKeysStore struct {
	mock.Mock
}

func NewMockKeysStore() *MockKeysStore {
	return &MockKeysStore{}
}

func (m *MockKeysStore) ListKeys(ownerID uuid.UUID, limit int) ([]model.APIKey, error) {
	args := m.Called(ownerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.APIKey), args.Error(1)
}

func (m *MockKeysStore) FetchKey(ownerID, id uuid.UUID) (*model.APIKey, error) {
	args := m.Called(ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.APIKey), args.Error(1)
}

func (m *MockKeysStore) CreateKey(key *model.APIKey) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockKeysStore) UpdateKey(ownerID, id uuid.UUID, update store.KeyUpdate) (*model.APIKey, error) {
	args := m.Called(ownerID, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.APIKey), args.Error(1)
}

func (m *MockKeysStore) RevokeKey(ownerID, id uuid.UUID) (*model.APIKey, error) {
	args := m.Called(ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.APIKey), args.Error(1)
}

func (m *MockKeysStore) DeleteKey(ownerID, id uuid.UUID) error {
	args := m.Called(ownerID, id)
	return args.Error(0)
}

// MockCampaignsStore implements store.CampaignsStore for testing using testify/mock
type MockCampaignsStore struct {
	mock.Mock
}

func NewMockCampaignsStore() *MockCampaignsStore {
	return &MockCampaignsStore{}
}

func (m *MockCampaignsStore) ListCampaigns(ownerID uuid.UUID, limit int) ([]model.Campaign, error) {
	args := m.Called(ownerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Campaign), args.Error(1)
}

func (m *MockCampaignsStore) FetchCampaign(ownerID, id uuid.UUID) (*model.Campaign, error) {
	args := m.Called(ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *MockCampaignsStore) CreateCampaign(campaign *model.Campaign) error {
	args := m.Called(campaign)
	return args.Error(0)
}

func (m *MockCampaignsStore) UpdateCampaign(ownerID, id uuid.UUID, update store.CampaignUpdate) (*model.Campaign, error) {
	args := m.Called(ownerID, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *MockCampaignsStore) TransitionCampaign(ownerID, id uuid.UUID, to model.CampaignStatus) (*model.Campaign, error) {
	args := m.Called(ownerID, id, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *MockCampaignsStore) ApproveCampaign(ownerID, id uuid.UUID) (*model.Campaign, error) {
	args := m.Called(ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *MockCampaignsStore) UpdateCampaignMetrics(ownerID, id uuid.UUID, metrics model.CampaignMetrics) (*model.Campaign, error) {
	args := m.Called(ownerID, id, metrics)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *MockCampaignsStore) DeleteCampaign(ownerID, id uuid.UUID) error {
	args := m.Called(ownerID, id)
	return args.Error(0)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}
