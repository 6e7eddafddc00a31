package eventrepo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"commerce/internal/adapters/out/postgres/eventrepo"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderEventRepositoryIntegrationTestSuite provides integration tests for
// OrderEventRepository using PostgreSQL containers to verify ledger behavior.
type OrderEventRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *eventrepo.GormOrderEventRepository
}

func (suite *OrderEventRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&eventrepo.EventDTO{}))
}

func (suite *OrderEventRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_events").Error)
	suite.repository = eventrepo.NewGormOrderEventRepository(suite.db)
}

func (suite *OrderEventRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderEventRepositoryIntegrationTestSuite) TestAppendAndList_RoundTrip() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	event, err := order.NewEvent(orderID, order.EventTypeCreated,
		map[string]any{"order_number": "ORD00000001"}, "", "system")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Append(ctx, event))

	events, err := suite.repository.ListByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(events, 1)

	suite.True(events[0].ID().IsEqual(event.ID()))
	suite.True(events[0].OrderID().IsEqual(orderID))
	suite.Equal(order.EventTypeCreated, events[0].Type())
	suite.Equal("ORD00000001", events[0].Data()["order_number"])
	suite.Equal("system", events[0].CreatedBy())
}

func (suite *OrderEventRepositoryIntegrationTestSuite) TestListByOrder_InsertionOrder() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	// Same wall-clock timestamp for every entry; the seq column must keep
	// insertion order stable anyway.
	for i := 0; i < 5; i++ {
		event, err := order.NewEvent(orderID, order.EventTypeNote,
			map[string]any{"n": fmt.Sprintf("%d", i)}, "", "tester")
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Append(ctx, event))
	}

	events, err := suite.repository.ListByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(events, 5)
	for i, event := range events {
		suite.Equal(fmt.Sprintf("%d", i), event.Data()["n"])
	}
}

func (suite *OrderEventRepositoryIntegrationTestSuite) TestListByOrder_FiltersByOrder() {
	ctx := context.Background()
	firstOrder := kernel.NewUUID()
	secondOrder := kernel.NewUUID()

	eventOne, err := order.NewEvent(firstOrder, order.EventTypeNote, nil, "first", "tester")
	suite.Require().NoError(err)
	eventTwo, err := order.NewEvent(secondOrder, order.EventTypeNote, nil, "second", "tester")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Append(ctx, eventOne))
	suite.Require().NoError(suite.repository.Append(ctx, eventTwo))

	events, err := suite.repository.ListByOrder(ctx, firstOrder)
	suite.Require().NoError(err)
	suite.Require().Len(events, 1)
	suite.Equal("first", events[0].Note())
}

func (suite *OrderEventRepositoryIntegrationTestSuite) TestListByOrder_EmptyLedger() {
	ctx := context.Background()

	events, err := suite.repository.ListByOrder(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Empty(events)
}

func TestOrderEventRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderEventRepositoryIntegrationTestSuite))
}
