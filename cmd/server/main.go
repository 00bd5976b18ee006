package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"wms-backend/internal/auth"
	"wms-backend/internal/catalog"
	"wms-backend/internal/config"
	"wms-backend/internal/dashboard"
	"wms-backend/internal/database"
	"wms-backend/internal/logger"
	"wms-backend/internal/manufacturing"
	"wms-backend/internal/models"
	"wms-backend/internal/orders"
	"wms-backend/internal/picklist"
	"wms-backend/internal/reconcile"
	"wms-backend/internal/scheduler"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Env, cfg.LogLevel)
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	jwtGuard := auth.JWTMiddleware(cfg)

	// Fulfillment wire surface (dashboard-facing, stable paths)
	app.Post("/orders/generateLists/", jwtGuard,
		auth.RequireRole(models.RoleManager), reconcile.GenerateListsHandler())

	qaDash := app.Group("/qa_dashboard", jwtGuard)
	qaDash.Post("/qa_tasks/update/",
		auth.RequireRole(models.RoleQA), manufacturing.UpdateQAHandler())
	qaDash.Post("/qa_tasks/report_error/",
		auth.RequireRole(models.RoleQA), manufacturing.ReportErrorHandler())
	qaDash.Post("/qa_tasks/update_status/",
		auth.RequireRole(models.RoleManager, models.RoleQA), manufacturing.UpdateStatusHandler())
	qaDash.Post("/qa_tasks/error_reports/resolve/",
		auth.RequireRole(models.RoleManager), manufacturing.ResolveErrorHandler())
	qaDash.Post("/send_to_pick_and_pack",
		auth.RequireRole(models.RoleQA), manufacturing.SendToPickAndPackHandler())

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	protected := api.Group("", jwtGuard)
	protected.Get("/auth/me", auth.MeHandler())

	// User management
	adminRoutes := protected.Group("/admin", auth.RequireRole(models.RoleAdmin))
	adminRoutes.Post("/users", auth.CreateUserHandler())
	adminRoutes.Get("/users", auth.ListUsersHandler())
	adminRoutes.Put("/users/:id", auth.UpdateUserHandler())
	adminRoutes.Delete("/users/:id", auth.DeleteUserHandler())

	// Part catalog
	protected.Get("/parts", catalog.ListPartsHandler())
	protected.Get("/parts/:id", catalog.GetPartHandler())
	protected.Post("/parts", auth.RequireRole(models.RoleManager), catalog.CreatePartHandler())
	protected.Put("/parts/:id", auth.RequireRole(models.RoleManager), catalog.UpdatePartHandler())
	protected.Delete("/parts/:id", auth.RequireRole(models.RoleManager), catalog.DeletePartHandler())

	// Inventory
	protected.Get("/inventory", catalog.ListInventoryHandler())
	protected.Post("/inventory", auth.RequireRole(models.RoleManager), catalog.CreateInventoryHandler())
	protected.Put("/inventory/:id", auth.RequireRole(models.RoleManager), catalog.AdjustInventoryHandler())

	// Order intake
	protected.Get("/orders", orders.ListOrdersHandler())
	protected.Get("/orders/:id", orders.GetOrderHandler())
	protected.Post("/orders", auth.RequireRole(models.RoleManager), orders.CreateOrderHandler())
	protected.Post("/orders/:id/ship", auth.RequireRole(models.RoleManager), orders.ShipOrderHandler())

	// Picklists
	protected.Get("/picklists", picklist.ListPicklistsHandler())
	protected.Post("/picklists/:id/assign",
		auth.RequireRole(models.RoleStaff, models.RoleEmployee), picklist.AssignPicklistHandler())
	protected.Post("/picklists/items/:id/pick",
		auth.RequireRole(models.RoleStaff, models.RoleEmployee), picklist.PickItemHandler())

	// Manufacturing
	protected.Get("/manufacturing/tasks", manufacturing.ListTasksHandler())
	protected.Get("/manufacturing/tasks/:id/error_reports", manufacturing.ListErrorReportsHandler())
	protected.Post("/manufacturing/tasks/advance",
		auth.RequireRole(models.RoleStaff), manufacturing.AdvanceTaskHandler())

	// Dashboards
	protected.Get("/dashboard/stats", dashboard.StatsHandler())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OverdueInterval > 0 {
		go scheduler.Run(ctx, time.Duration(cfg.OverdueInterval)*time.Minute)
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("server listening")
		if err := app.Listen(":" + cfg.HTTPPort); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	_ = app.Shutdown()
}
