package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Trinoooo/scribble/consts"
	"github.com/Trinoooo/scribble/errs"
	"github.com/Trinoooo/scribble/logs"
	"github.com/Trinoooo/scribble/server"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	flagHost = &cli.StringFlag{
		Name:    "host",
		Aliases: []string{"h"},
		Value:   "127.0.0.1",
		Usage:   "server host name.",
		EnvVars: []string{consts.Host},
	}
	flagPort = &cli.Int64Flag{
		Name:    "port",
		Aliases: []string{"p"},
		Value:   8024,
		Usage:   "server port number, 0 < port < 65535 are available.",
		Action: func(c *cli.Context, port int64) error {
			if port <= 0 || port > 65535 {
				e := errs.NewInvalidParamErr()
				logs.Error(e.Error(), zap.String(consts.LogFieldParams, "port"), zap.Int64(consts.LogFieldValue, port))
				return e
			}
			return nil
		},
		EnvVars: []string{consts.Port},
	}
	flagDurable = &cli.BoolFlag{
		Name:    "durable",
		Aliases: []string{"d"},
		Value:   false,
		Usage:   "set this flag to make account data durable.",
		EnvVars: []string{consts.Durable},
	}
)

type Wrapper struct {
	app *cli.App
}

func NewWrapper() *Wrapper {
	wrapper := &Wrapper{
		app: &cli.App{
			Name:    "scribble",
			Usage:   "a fixed-capacity remote-write buffer host",
			Version: "0.0.1.260829_alpha",
		},
	}
	wrapper.modifyDefaultHelp()
	wrapper.withFlags()
	wrapper.withAction()
	wrapper.withAuthor()
	return wrapper
}

func (wrapper *Wrapper) Run(args []string) error {
	return wrapper.app.Run(args)
}

func (wrapper *Wrapper) modifyDefaultHelp() {
	cli.HelpFlag = &cli.BoolFlag{
		Name: "help",
	}
	cli.AppHelpTemplate = consts.HelpTemplate
}

func (wrapper *Wrapper) withFlags() {
	wrapper.app.Flags = []cli.Flag{
		flagHost,
		flagPort,
		flagDurable,
	}
}

func (wrapper *Wrapper) withAction() {
	wrapper.app.Action = func(ctx *cli.Context) error {
		config, err := server.LoadConfig()
		if err != nil {
			return err
		}
		if ctx.Bool("durable") {
			config.Set(consts.Store, consts.StoreDurable)
		}

		srv, err := server.NewServerWithConfig(config)
		if err != nil {
			return err
		}

		mux := http.NewServeMux()
		mux.HandleFunc("/", srv.Server)
		httpServer := &http.Server{
			Addr:    fmt.Sprintf("%s:%d", ctx.String("host"), ctx.Int64("port")),
			Handler: mux,
		}

		go func() {
			// bugfix: 使用缓冲通道避免执行信号处理程序（下面的for）之前有信号到达会被丢弃
			sig := make(chan os.Signal, 5)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			for range sig {
				logs.Info("shutdown...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				if e := httpServer.Shutdown(shutdownCtx); e != nil {
					logs.Error(fmt.Sprintf("server shutdown, err: %v", e))
				}
				cancel()
				if e := srv.Close(); e != nil {
					logs.Error(fmt.Sprintf("store close, err: %v", e))
				}
			}
		}()

		logs.Info("serving", zap.String(consts.LogFieldParams, httpServer.Addr))
		if err = httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (wrapper *Wrapper) withAuthor() {
	wrapper.app.Authors = []*cli.Author{
		{
			Name:  "Trino",
			Email: "sujun.trinoooo@gmail.com",
		},
	}
}
