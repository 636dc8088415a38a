// Package main implements the SSH server that serves the storefront TUI.
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	gossh "golang.org/x/crypto/ssh"

	"github.com/bungibobby/shop-terminal-go/internal/auth"
	"github.com/bungibobby/shop-terminal-go/internal/cache"
	"github.com/bungibobby/shop-terminal-go/internal/cart"
	"github.com/bungibobby/shop-terminal-go/internal/catalog"
	"github.com/bungibobby/shop-terminal-go/internal/config"
	"github.com/bungibobby/shop-terminal-go/internal/storage"
	"github.com/bungibobby/shop-terminal-go/internal/storefront"
	"github.com/bungibobby/shop-terminal-go/internal/tui"
	"github.com/bungibobby/shop-terminal-go/internal/wishlist"
)

// checkoutGateway adapts the storefront client to the cart's gateway
// interface.
type checkoutGateway struct {
	client *storefront.Client
}

func (g *checkoutGateway) CreateCheckout(ctx context.Context, lines []cart.CheckoutLine) (string, error) {
	items := make([]storefront.CheckoutItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, storefront.CheckoutItem{VariantID: line.VariantID, Quantity: line.Quantity})
	}
	session, err := g.client.CreateCheckout(ctx, items)
	if err != nil {
		return "", err
	}
	return session.CheckoutURL, nil
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "shopssh",
	})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}

	// Ensure host key exists
	if err := ensureHostKey(cfg.SSHHostKeyPath, logger); err != nil {
		logger.Fatal("failed to ensure host key", "err", err)
	}

	// Load allowlist if in allowlist mode
	var allowlist *auth.Allowlist
	if cfg.SSHAuthMode == config.AuthModeAllowlist {
		allowlist, err = auth.Load(cfg.AllowlistPath)
		if err != nil {
			if errors.Is(err, auth.ErrNotFound) {
				logger.Info("creating empty allowlist", "path", cfg.AllowlistPath)
				if err := auth.WriteTemplate(cfg.AllowlistPath); err != nil {
					logger.Fatal("failed to create allowlist", "err", err)
				}
				logger.Info("add your SSH public key to the allowlist and restart")
				os.Exit(1)
			}
			logger.Fatal("failed to load allowlist", "err", err)
		}
		if allowlist.Len() == 0 {
			logger.Warn("allowlist is empty, no connections will be accepted", "path", cfg.AllowlistPath)
		}
		logger.Info("loaded allowlist", "keys", allowlist.Len())
	} else {
		logger.Warn("running in PUBLIC mode, anyone can connect")
	}

	// Create storefront client
	clientOpts := []storefront.ClientOption{}
	if cfg.StorefrontAccessToken != "" {
		clientOpts = append(clientOpts, storefront.WithAccessToken(cfg.StorefrontAccessToken))
	}
	client := storefront.NewClient(cfg.StorefrontBaseURL, clientOpts...)

	// Discount rules: configured table or the built-in brand defaults.
	rules := cart.DefaultRules()
	if cfg.DiscountRulesPath != "" {
		rules, err = cart.LoadRules(cfg.DiscountRulesPath)
		if err != nil {
			logger.Fatal("failed to load discount rules", "path", cfg.DiscountRulesPath, "err", err)
		}
		logger.Info("loaded discount rules", "path", cfg.DiscountRulesPath, "rules", len(rules))
	}
	resolver := cart.NewResolver(rules)

	// Shared infrastructure: catalog, list cache, durable cart storage.
	cat := catalog.New(client, cfg.CacheTTL)
	listCache := cache.New[tui.ProductListCacheKey, []storefront.Product](cfg.CacheTTL)
	store, err := storage.NewFileStore(cfg.StateDir)
	if err != nil {
		logger.Fatal("failed to open state dir", "path", cfg.StateDir, "err", err)
	}
	gateway := &checkoutGateway{client: client}

	// Create SSH server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.SSHAddr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				// Each SSH user gets their own cart and wishlist slots.
				user := s.User()
				sessionLogger := logger.With("user", user)
				persister := cart.NewPersister(store, user+"-cart", sessionLogger)
				cartSvc := cart.NewService(resolver, gateway, cat, persister, sessionLogger)
				wl := wishlist.New(store, user+"-wishlist", sessionLogger)
				return tui.NewModel(client, cartSvc, cat, wl, listCache), []tea.ProgramOption{tea.WithAltScreen()}
			}),
		),
	}

	// Add authentication based on mode
	if cfg.SSHAuthMode == config.AuthModeAllowlist {
		opts = append(opts, wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			return allowlist.Allowed(key)
		}))
	} else {
		// Public mode - accept any public key
		opts = append(opts, wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		}))
	}

	// Always disable password auth
	opts = append(opts, wish.WithPasswordAuth(func(ctx ssh.Context, password string) bool {
		return false
	}))

	// Create SSH server
	server, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create SSH server", "err", err)
	}

	// Handle shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", cfg.SSHAddr)
	logger.Info("storefront API", "url", cfg.StorefrontBaseURL)
	logger.Info("auth mode", "mode", cfg.SSHAuthMode)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// ensureHostKey generates an ED25519 host key if it doesn't exist.
func ensureHostKey(path string, logger *log.Logger) error {
	// Check if key exists
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	logger.Info("generating new ED25519 host key", "path", path)

	pubKey, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("generating key: %w", err)
	}

	// Convert to OpenSSH format
	sshPrivKey, err := gossh.MarshalPrivateKey(privKey, "")
	if err != nil {
		return fmt.Errorf("marshaling private key: %w", err)
	}

	if err := os.WriteFile(path, pem.EncodeToMemory(sshPrivKey), 0600); err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}

	sshPubKey, err := gossh.NewPublicKey(pubKey)
	if err != nil {
		return fmt.Errorf("creating public key: %w", err)
	}

	pubKeyBytes := gossh.MarshalAuthorizedKey(sshPubKey)
	if err := os.WriteFile(path+".pub", pubKeyBytes, 0644); err != nil {
		return fmt.Errorf("writing public key: %w", err)
	}

	return nil
}
