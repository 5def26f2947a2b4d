package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/charmbracelet/lipgloss"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sherbolotarbaev/portfolio/internal/blog"
	"github.com/sherbolotarbaev/portfolio/internal/config"
	"github.com/sherbolotarbaev/portfolio/internal/markup"
	"github.com/sherbolotarbaev/portfolio/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Personal portfolio and blog server",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config.yaml)")

	root.AddCommand(
		newServeCmd(&configPath),
		newPostsCmd(&configPath),
		newRenderCmd(),
	)
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	var port string
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("watch") {
				cfg.Watch = watch
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides config)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload posts when content changes")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	st, err := store.Open(cfg.DBPath, randomToken())
	if err != nil {
		return err
	}
	defer st.Close()

	posts := blog.NewIndex(cfg.ContentDir)
	if cfg.Watch {
		go func() {
			if err := posts.Watch(ctx); err != nil {
				log.Printf("content watch stopped: %v", err)
			}
		}()
	}

	s, err := newServer(cfg, posts, st)
	if err != nil {
		return err
	}
	if _, err := s.scheduleCleanup(ctx, cfg.CleanupCron); err != nil {
		return err
	}
	r, err := s.routes()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s (%d posts from %s)", srv.Addr, len(posts.All()), posts.Dir())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(14)
	slugStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

func newPostsCmd(configPath *string) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List blog posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				cfg, err := config.Load(*configPath)
				if err != nil {
					return err
				}
				dir = cfg.ContentDir
			}

			out := cmd.OutOrStdout()
			posts := blog.Load(dir)
			for _, p := range posts {
				date := p.DateLabel()
				if date == "" {
					date = "undated"
				}
				fmt.Fprintf(out, "%s %s %s\n", dateStyle.Render(date), titleStyle.Render(p.Title), slugStyle.Render(p.Link))
			}
			fmt.Fprintf(out, "%d posts in %s\n", len(posts), dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "content directory (overrides config)")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var css bool

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a Markdown/MDX file to HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			renderer := markup.NewRenderer(markup.NewHighlighter("", ""))
			doc, err := renderer.Render(blog.StripFrontMatter(src))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if css {
				styles, err := renderer.Highlighter().CSS()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "<style>\n%s</style>\n", styles)
			}
			fmt.Fprintln(out, doc.HTML)
			return nil
		},
	}
	cmd.Flags().BoolVar(&css, "css", false, "prepend the highlight stylesheet")
	return cmd
}
