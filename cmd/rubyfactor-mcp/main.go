package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"rubyfactor/internal/mcp"
	"rubyfactor/pkg/config"
)

func main() {
	var (
		workspaceFlag = flag.String("workspace", "", "Root workspace directory (defaults to current directory)")
		configFlag    = flag.String("config", "", "Configuration file (default "+config.DefaultFileName+" if present)")
		portFlag      = flag.Int("port", 0, "TCP port to listen on (0 for stdio)")
		debugFlag     = flag.Bool("debug", false, "Enable debug logging")
		versionFlag   = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Println("rubyfactor-mcp v0.1.0")
		fmt.Println("Model Context Protocol server for Ruby refactoring")
		os.Exit(0)
	}

	// Stdio transport owns stdout, so all logging goes to stderr.
	level := log.InfoLevel
	if *debugFlag {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})

	workspace := *workspaceFlag
	if workspace == "" {
		var err error
		workspace, err = os.Getwd()
		if err != nil {
			logger.Fatal("cannot determine current directory", "err", err)
		}
	}
	workspace, err := filepath.Abs(workspace)
	if err != nil {
		logger.Fatal("cannot resolve workspace path", "err", err)
	}
	if info, err := os.Stat(workspace); err != nil || !info.IsDir() {
		logger.Fatal("workspace is not a directory", "path", workspace)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		logger.Fatal("cannot load configuration", "err", err)
	}

	logger.Info("starting MCP server", "workspace", workspace)
	s := mcp.NewServer(workspace, cfg, logger)

	if *portFlag == 0 {
		if err := server.ServeStdio(s); err != nil {
			logger.Fatal("server failed", "err", err)
		}
	} else {
		httpServer := server.NewStreamableHTTPServer(s)
		logger.Info("listening", "port", *portFlag)
		if err := httpServer.Start(fmt.Sprintf(":%d", *portFlag)); err != nil {
			logger.Fatal("HTTP server failed", "err", err)
		}
	}
}
