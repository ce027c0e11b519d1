package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/LLLgoyour/StarScope/internal/app/config"
	"github.com/LLLgoyour/StarScope/internal/app/handler"
)

type Application struct {
	Config  *config.Config
	Router  *gin.Engine
	Handler *handler.Handler
}

func NewApp(cfg *config.Config, r *gin.Engine, h *handler.Handler) *Application {
	return &Application{
		Config:  cfg,
		Router:  r,
		Handler: h,
	}
}

func (a *Application) RunApp() {
	// Регистрируем страницы, API и статику
	a.Handler.RegisterStatic(a.Router)
	a.Handler.RegisterHandler(a.Router)

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	log.Infof("StarScope запускается на %s", serverAddress)

	if err := a.Router.Run(serverAddress); err != nil {
		log.Fatal(err)
	}
	log.Info("StarScope остановлен")
}
