package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "commerce/internal/adapters/out/postgres"
	"commerce/internal/adapters/out/postgres/eventrepo"
	"commerce/internal/adapters/out/postgres/orderrepo"
	"commerce/internal/adapters/out/postgres/seqrepo"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &eventrepo.EventDTO{}, &seqrepo.SequenceDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_events, sequences").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder(orderNumber string) *order.Order {
	item, err := order.NewItem("Widget", "", "SKU-1", 1, 4.50)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), orderNumber, nil,
		"buyer@example.com", "USD", []order.Item{item}, nil, nil)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) countRows(table string) int64 {
	var count int64
	suite.Require().NoError(suite.db.Table(table).Count(&count).Error)
	return count
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow1.OrderEventRepository(), "First instance should provide event repository")
	suite.NotNil(uow2.SequenceRepository(), "Second instance should provide sequence repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_CommitWithoutTransaction verifies commit and rollback fail
// when no transaction is active.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitWithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

// TestUnitOfWork_CommitPersistsOrderAndLedgerTogether verifies that an order
// write and its ledger appends become visible atomically on commit.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsOrderAndLedgerTogether() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	seq, err := uow.SequenceRepository().Next(ctx, ports.OrderNumberSequence)
	suite.Require().NoError(err)
	suite.Equal(int64(1), seq)

	aggregate := suite.createTestOrder("ORD00000001")
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))

	event, err := order.NewEvent(aggregate.ID(), order.EventTypeCreated,
		map[string]any{"order_number": aggregate.OrderNumber()}, "", "system")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderEventRepository().Append(ctx, event))

	// Nothing is visible outside the transaction yet.
	suite.Equal(int64(0), suite.countRows("orders"))
	suite.Equal(int64(0), suite.countRows("order_events"))

	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(int64(1), suite.countRows("orders"))
	suite.Equal(int64(1), suite.countRows("order_events"))
}

// TestUnitOfWork_RollbackDiscardsEverything verifies that a rollback leaves no
// order, no ledger entry, and no consumed sequence value behind.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsEverything() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	seq, err := uow.SequenceRepository().Next(ctx, ports.OrderNumberSequence)
	suite.Require().NoError(err)
	suite.Equal(int64(1), seq)

	aggregate := suite.createTestOrder("ORD00000001")
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))

	event, err := order.NewEvent(aggregate.ID(), order.EventTypeCreated, nil, "", "system")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderEventRepository().Append(ctx, event))

	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(int64(0), suite.countRows("orders"))
	suite.Equal(int64(0), suite.countRows("order_events"))

	// The sequence draw rolled back with the transaction, so the next
	// committed draw reuses the value.
	newUow := suite.factory.Create()
	suite.Require().NoError(newUow.Begin(ctx))
	seq, err = newUow.SequenceRepository().Next(ctx, ports.OrderNumberSequence)
	suite.Require().NoError(err)
	suite.Equal(int64(1), seq)
	suite.Require().NoError(newUow.Commit(ctx))
}

// TestUnitOfWork_ConcurrentUpdateConflict verifies that two units of work
// racing on the same aggregate resolve through the version check: the loser
// receives a version conflict and its transaction can be rolled back cleanly.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentUpdateConflict() {
	ctx := context.Background()

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	aggregate := suite.createTestOrder("ORD00000001")
	suite.Require().NoError(setup.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(setup.Commit(ctx))

	winner := suite.factory.Create()
	suite.Require().NoError(winner.Begin(ctx))
	first, err := winner.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(first.Confirm())
	suite.Require().NoError(winner.OrderRepository().Update(ctx, first))
	suite.Require().NoError(winner.Commit(ctx))

	loser := suite.factory.Create()
	suite.Require().NoError(loser.Begin(ctx))
	second, err := loser.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(2, second.Version())

	// Simulate a stale snapshot racing against the committed writer.
	stale := suite.createStaleCopy(second)
	suite.Require().NoError(stale.Cancel())
	err = loser.OrderRepository().Update(ctx, stale)
	suite.Require().ErrorIs(err, errs.ErrVersionConflict)
	suite.Require().NoError(loser.Rollback(ctx))

	// The winner's state survived.
	check := suite.factory.Create()
	suite.Require().NoError(check.Begin(ctx))
	final, err := check.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusConfirmed, final.Status())
	suite.Require().NoError(check.Commit(ctx))
}

// createStaleCopy rebuilds the aggregate with an out-of-date version so the
// optimistic check has something to reject.
func (suite *UnitOfWorkIntegrationTestSuite) createStaleCopy(current *order.Order) *order.Order {
	stale, err := order.RestoreOrder(
		current.ID(),
		current.OrderNumber(),
		current.UserID(),
		current.Email(),
		current.Currency(),
		current.Items(),
		current.Status(),
		current.PaymentStatus(),
		current.FulfillmentStatus(),
		current.ShippingAddress(),
		current.BillingAddress(),
		current.Notes(),
		current.Metadata(),
		current.Version()-1,
		current.CreatedAt(),
		current.UpdatedAt(),
	)
	suite.Require().NoError(err)
	return stale
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
