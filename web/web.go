// Package web provides the web server for the cms-ui admin panel:
// routing, middleware, background jobs and lifecycle.
package web

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"strconv"

	"cms-ui/config"
	"cms-ui/logger"
	"cms-ui/util/common"
	"cms-ui/web/controller"
	"cms-ui/web/job"
	"cms-ui/web/middleware"
	"cms-ui/web/network"
	"cms-ui/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

// Server is the cms-ui panel web server with its controllers, services
// and scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index      *controller.IndexController
	setting    *controller.SettingController
	navigation *controller.NavigationController
	server     *controller.ServerController

	settingService    *service.SettingService
	sessionService    *service.SessionService
	userService       *service.UserService
	authService       *service.AuthService
	navigationService *service.NavigationService
	categoryService   *service.CategoryService
	serverService     *service.ServerService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with its service graph
// wired and a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())

	sessionService := service.NewSessionService()
	userService := service.NewUserService(sessionService)
	s := &Server{
		settingService:    &service.SettingService{},
		sessionService:    sessionService,
		userService:       userService,
		authService:       service.NewAuthService(userService, sessionService),
		navigationService: &service.NavigationService{},
		categoryService:   &service.CategoryService{},
		serverService:     &service.ServerService{},

		ctx:    ctx,
		cancel: cancel,
	}
	return s
}

// initRouter initializes Gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	if webDomain := s.settingService.GetWebDomain(); webDomain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(webDomain))
	}

	basePath := s.settingService.GetBasePath()
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(func(c *gin.Context) {
		c.Set("base_path", basePath)
	})

	g := engine.Group(basePath)
	s.index = controller.NewIndexController(g, s.authService, s.userService, s.sessionService)

	panel := controller.NewPanelGroup(g, s.authService)
	s.setting = controller.NewSettingController(panel, s.settingService, s.userService)
	s.navigation = controller.NewNavigationController(panel, s.navigationService, s.categoryService)
	s.server = controller.NewServerController(panel, s.serverService)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	// Lazy expiry keeps reads correct; the sweep keeps the table small.
	s.cron.AddJob("@hourly", job.NewClearExpiredSessionsJob(s.sessionService))
	s.cron.AddJob("@every 10m", job.NewCheckpointJob())
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	if err := s.userService.EnsureDefaultAdmin(); err != nil {
		return err
	}

	loc, err := s.settingService.GetTimeLocation()
	if err != nil {
		return err
	}
	s.cron = cron.New(cron.WithLocation(loc), cron.WithSeconds())
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	certFile := s.settingService.GetCertFile()
	keyFile := s.settingService.GetKeyFile()
	listen := s.settingService.GetListen()
	port, err := s.settingService.GetPort()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(listen, strconv.Itoa(port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	if certFile != "" || keyFile != "" {
		if cert, err := tls.LoadX509KeyPair(certFile, keyFile); err == nil {
			cfg := &tls.Config{Certificates: []tls.Certificate{cert}}
			listener = network.NewAutoHttpsListener(listener)
			listener = tls.NewListener(listener, cfg)
			logger.Info("Web server running HTTPS on", listener.Addr())
		} else {
			logger.Error("Error loading certificates:", err)
			logger.Info("Web server running HTTP on", listener.Addr())
		}
	} else {
		logger.Info("Web server running HTTP on", listener.Addr())
	}

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		defer common.Recover("web server serve loop")
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and its cron jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		if closeErr := s.listener.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}
