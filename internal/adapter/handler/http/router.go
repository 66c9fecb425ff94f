package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"om-svc-order/internal/adapter/config"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	orderHandler *OrderHandler,
	itemHandler *ItemHandler,
	historyHandler *HistoryHandler,
	eventTypeHandler *EventTypeHandler) (*Router, error) {

	router := gin.New()

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		orders := api.Group("/orders")
		{
			orders.GET("", orderHandler.GetAllOrders)
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/customer/:customerId", orderHandler.GetOrdersByCustomer)
			orders.GET("/date/:date", orderHandler.GetOrdersByDate)
			orders.GET("/daterange", orderHandler.GetOrdersByDateRange)
			orders.GET("/:orderId", orderHandler.GetOrder)
			orders.PUT("/:orderId", orderHandler.UpdateOrder)
			orders.DELETE("/:orderId", orderHandler.DeleteOrder)

			orders.GET("/:orderId/items", itemHandler.GetOrderItems)
			orders.PUT("/:orderId/items", itemHandler.UpdateOrderItems)

			orders.GET("/:orderId/history", historyHandler.GetOrderHistory)
			orders.GET("/:orderId/items/history", historyHandler.GetOrderItemHistory)
		}

		eventTypes := api.Group("/eventTypes")
		{
			eventTypes.GET("", eventTypeHandler.ListEventTypes)
			eventTypes.POST("", eventTypeHandler.CreateEventType)
			eventTypes.DELETE("/:eventTypeId", eventTypeHandler.DeleteEventType)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
