// Package http exposes the order lifecycle engine over a JSON REST API.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"net/http"
	"strconv"
	"time"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/application/usecases/queries"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP surface for handling order requests.
type Server struct {
	// Command handlers
	createOrderHandler   commands.CreateOrderCommandHandler
	confirmOrderHandler  commands.ConfirmOrderCommandHandler
	cancelOrderHandler   commands.CancelOrderCommandHandler
	updateOrderHandler   commands.UpdateOrderCommandHandler
	addOrderEventHandler commands.AddOrderEventCommandHandler

	// Query handlers
	getOrderHandler       queries.GetOrderQueryHandler
	getOrderEventsHandler queries.GetOrderEventsQueryHandler
	listOrdersHandler     queries.ListOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	addOrderEventHandler commands.AddOrderEventCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderEventsHandler queries.GetOrderEventsQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:    createOrderHandler,
		confirmOrderHandler:   confirmOrderHandler,
		cancelOrderHandler:    cancelOrderHandler,
		updateOrderHandler:    updateOrderHandler,
		addOrderEventHandler:  addOrderEventHandler,
		getOrderHandler:       getOrderHandler,
		getOrderEventsHandler: getOrderEventsHandler,
		listOrdersHandler:     listOrdersHandler,
	}
}

// RegisterRoutes attaches all order endpoints to the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders/number/:number", s.GetOrderByNumber)
	api.PATCH("/orders/:id", s.UpdateOrder)
	api.POST("/orders/:id/confirm", s.ConfirmOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/events", s.AddOrderEvent)
	api.GET("/orders/:id/events", s.GetOrderEvents)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	var userID *kernel.UUID
	if req.UserID != "" {
		id, err := kernel.UUIDFromString(req.UserID)
		if err != nil {
			return errorJSON(ctx, http.StatusBadRequest, "invalid user_id")
		}
		userID = &id
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, itemReq := range req.Items {
		item, err := order.NewItem(itemReq.ProductName, itemReq.VariantID, itemReq.SKU, itemReq.Quantity, itemReq.Price)
		if err != nil {
			return errorJSON(ctx, http.StatusBadRequest, "invalid item: "+err.Error())
		}
		items = append(items, item)
	}

	shippingAddress, err := addressFromRequest(req.ShippingAddress)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid shipping_address: "+err.Error())
	}
	billingAddress, err := addressFromRequest(req.BillingAddress)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid billing_address: "+err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(
		userID, req.Email, req.Currency, items, shippingAddress, billingAddress, req.CreatedBy)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		code, msg := statusFromError(err)
		return errorJSON(ctx, code, msg)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order by ID.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		code, msg := statusFromError(err)
		return errorJSON(ctx, code, msg)
	}

	return ctx.JSON(http.StatusOK, queryOrderToResponse(resp))
}

// GetOrderByNumber handles GET /api/v1/orders/number/:number.
func (s *Server) GetOrderByNumber(ctx echo.Context) error {
	query, err := queries.NewGetOrderByNumberQuery(ctx.Param("number"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		code, msg := statusFromError(err)
		return errorJSON(ctx, code, msg)
	}

	return ctx.JSON(http.StatusOK, queryOrderToResponse(resp))
}

// ListOrders handles GET /api/v1/orders - filtered, paginated listing.
func (s *Server) ListOrders(ctx echo.Context) error {
	filter := queries.ListOrdersFilter{
		UserID:            ctx.QueryParam("user_id"),
		Status:            ctx.QueryParam("status"),
		PaymentStatus:     ctx.QueryParam("payment_status"),
		FulfillmentStatus: ctx.QueryParam("fulfillment_status"),
		Search:            ctx.QueryParam("q"),
		SortBy:            ctx.QueryParam("sort_by"),
		SortDesc:          ctx.QueryParam("sort_order") == "desc",
	}

	if raw := ctx.QueryParam("date_from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return errorJSON(ctx, http.StatusBadRequest, "invalid date_from")
		}
		filter.DateFrom = &t
	}
	if raw := ctx.QueryParam("date_to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return errorJSON(ctx, http.StatusBadRequest, "invalid date_to")
		}
		filter.DateTo = &t
	}
	if raw := ctx.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return errorJSON(ctx, http.StatusBadRequest, "invalid page")
		}
		filter.Page = page
	}
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return errorJSON(ctx, http.StatusBadRequest, "invalid limit")
		}
		filter.Limit = limit
	}

	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		code, msg := statusFromError(err)
		return errorJSON(ctx, code, msg)
	}

	page, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		code, msg := statusFromError(err)
		return errorJSON(ctx, code, msg)
	}

	orders := make([]OrderResponse, 0, len(page.Orders))
	for _, o := range page.Orders {
		orders = append(orders, queryOrderToResponse(o))
	}

	return ctx.JSON(http.StatusOK, OrderListResponse{
		Orders: orders,
		Total:  page.Total,
		Page:   page.Page,
		Limit:  page.Limit,
	})
}

// UpdateOrder handles PATCH /api/v1/orders/:id - patches order fields.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	var req UpdateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	patch, err := patchFromRequest(req)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	cmd, err := commands.NewUpdateOrderCommand(id, patch, req.UpdatedBy)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	updated, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		code, msg := statusFromError(err)
		return errorJSON(ctx, code, msg)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// ConfirmOrder handles POST /api/v1/orders/:id/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	cmd, err := commands.NewConfirmOrderCommand(id, ctx.QueryParam("confirmed_by"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	confirmed, err := s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		code, msg := statusFromError(err)
		return errorJSON(ctx, code, msg)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(confirmed))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	var req CancelOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(id, req.Reason, req.CancelledBy)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		code, msg := statusFromError(err)
		return errorJSON(ctx, code, msg)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(cancelled))
}

// AddOrderEvent handles POST /api/v1/orders/:id/events - appends an annotation.
func (s *Server) AddOrderEvent(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	var req AddEventRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewAddOrderEventCommand(id, req.Type, req.Data, req.Note, req.CreatedBy)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	event, err := s.addOrderEventHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		code, msg := statusFromError(err)
		return errorJSON(ctx, code, msg)
	}

	return ctx.JSON(http.StatusCreated, eventToResponse(event))
}

// GetOrderEvents handles GET /api/v1/orders/:id/events - returns the ledger.
func (s *Server) GetOrderEvents(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	query, err := queries.NewGetOrderEventsQuery(id)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	events, err := s.getOrderEventsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		code, msg := statusFromError(err)
		return errorJSON(ctx, code, msg)
	}

	response := make([]EventResponse, 0, len(events))
	for _, event := range events {
		response = append(response, EventResponse{
			ID:        event.ID,
			OrderID:   event.OrderID,
			Type:      event.Type,
			Data:      event.Data,
			Note:      event.Note,
			CreatedBy: event.CreatedBy,
			CreatedAt: event.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

func addressFromRequest(req *AddressRequest) (*order.Address, error) {
	if req == nil {
		return nil, nil
	}

	address, err := order.NewAddress(req.Line1, req.Line2, req.City, req.Region, req.PostalCode, req.Country)
	if err != nil {
		return nil, err
	}

	return &address, nil
}

func patchFromRequest(req UpdateOrderRequest) (commands.UpdateOrderPatch, error) {
	var patch commands.UpdateOrderPatch

	if req.Status != nil {
		status, err := order.ParseStatus(*req.Status)
		if err != nil {
			return commands.UpdateOrderPatch{}, err
		}
		patch.Status = &status
	}
	if req.PaymentStatus != nil {
		paymentStatus, err := order.ParsePaymentStatus(*req.PaymentStatus)
		if err != nil {
			return commands.UpdateOrderPatch{}, err
		}
		patch.PaymentStatus = &paymentStatus
	}
	if req.FulfillmentStatus != nil {
		fulfillmentStatus, err := order.ParseFulfillmentStatus(*req.FulfillmentStatus)
		if err != nil {
			return commands.UpdateOrderPatch{}, err
		}
		patch.FulfillmentStatus = &fulfillmentStatus
	}
	patch.Notes = req.Notes
	patch.Metadata = req.Metadata

	return patch, nil
}

func queryOrderToResponse(resp queries.OrderResponse) OrderResponse {
	items := make([]ItemRequest, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, ItemRequest{
			ProductName: item.ProductName,
			VariantID:   item.VariantID,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	out := OrderResponse{
		ID:                resp.ID,
		OrderNumber:       resp.OrderNumber,
		UserID:            resp.UserID,
		Email:             resp.Email,
		Currency:          resp.Currency,
		Status:            resp.Status,
		PaymentStatus:     resp.PaymentStatus,
		FulfillmentStatus: resp.FulfillmentStatus,
		Items:             items,
		Notes:             resp.Notes,
		Metadata:          resp.Metadata,
		Version:           resp.Version,
		CreatedAt:         resp.CreatedAt,
		UpdatedAt:         resp.UpdatedAt,
	}

	if resp.ShippingAddress != nil {
		out.ShippingAddress = &AddressResponse{
			Line1:      resp.ShippingAddress.Line1,
			Line2:      resp.ShippingAddress.Line2,
			City:       resp.ShippingAddress.City,
			Region:     resp.ShippingAddress.Region,
			PostalCode: resp.ShippingAddress.PostalCode,
			Country:    resp.ShippingAddress.Country,
		}
	}
	if resp.BillingAddress != nil {
		out.BillingAddress = &AddressResponse{
			Line1:      resp.BillingAddress.Line1,
			Line2:      resp.BillingAddress.Line2,
			City:       resp.BillingAddress.City,
			Region:     resp.BillingAddress.Region,
			PostalCode: resp.BillingAddress.PostalCode,
			Country:    resp.BillingAddress.Country,
		}
	}

	return out
}
