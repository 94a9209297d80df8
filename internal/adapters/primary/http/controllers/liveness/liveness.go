package livenessController

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
)

// LivenessController - эндпоинт для внешнего аптайм-монитора.
// Отвечает только "процесс жив", не "бот работает".
type LivenessController struct {
	log *slog.Logger
}

func New(log *slog.Logger) *LivenessController {
	return &LivenessController{
		log: log,
	}
}

func (c *LivenessController) RegisterRoutes(r *gin.Engine) {
	r.GET("/", c.alive)
}

// alive всегда возвращает 200 с фиксированным телом
func (c *LivenessController) alive(ctx *gin.Context) {
	ctx.String(http.StatusOK, "I am alive")
}
