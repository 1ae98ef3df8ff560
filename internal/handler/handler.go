package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/config"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/repository"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/rotation"
)

const tokenCookieName = "__ecnc_shift_rotation_token"

var adminOnly = []domain.Role{domain.RoleAdmin}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	calendar    *rotation.Calendar

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client, calendar *rotation.Calendar) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		calendar:    calendar,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Get("/attendance", h.GetMyAttendance)
			r.Get("/shift", h.GetMyShift)
		})

		r.Route("/employees", func(r chi.Router) {
			r.With(h.RequiredRole(adminOnly)).Post("/", h.CreateEmployee)
			r.Get("/", h.GetAllEmployees)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.employeeInfo)
				r.Get("/", h.GetEmployee)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole(adminOnly)).Patch("/", h.UpdateEmployee)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole(adminOnly)).Delete("/", h.DeleteEmployee)
				r.With(h.RequiredRole(adminOnly)).Patch("/password", h.UpdateEmployeePassword)
			})
		})

		r.Route("/rotation", func(r chi.Router) {
			r.Get("/week", h.GetRotationWeek)
			r.Get("/shift", h.GetRotationShift)
			r.Get("/shifts", h.GetRotationShifts)
			r.Get("/calendar", h.GetRotationCalendar)
			r.With(h.RequiredRole(adminOnly)).Post("/notify", h.NotifyWeeklyShift)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", h.GetAttendancesByDate)
			r.With(h.RequiredRole(adminOnly)).Post("/auto-fill", h.AutoFillAttendance)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.RequiredRole(adminOnly))
				r.Use(h.attendanceRecord)
				r.Patch("/", h.UpdateAttendance)
				r.Delete("/", h.DeleteAttendance)
			})
		})
	})
}
