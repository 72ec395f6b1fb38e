package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/automoto/freezetag/config"
)

const heartbeatInterval = 30 * time.Second

// Registration announces the server to a master server list and keeps the
// entry alive with heartbeats.
type Registration struct {
	masterURL string
	address   string
	region    string
	serverID  string
	server    *Server
	client    *http.Client
	cancel    context.CancelFunc
}

type regRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Mode       string `json:"mode"`
	Level      string `json:"level"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Version    string `json:"version"`
	Region     string `json:"region"`
}

type regResponse struct {
	ID string `json:"id"`
}

type heartbeatRequest struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
}

func NewRegistration(masterURL, address, region string, server *Server) *Registration {
	return &Registration{
		masterURL: masterURL,
		address:   address,
		region:    region,
		server:    server,
		client:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Start registers and begins heartbeating until Stop or ctx is done.
func (r *Registration) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	if err := r.register(ctx); err != nil {
		log.Printf("[registration] initial registration failed: %v", err)
	}
	go r.heartbeatLoop(ctx)
}

func (r *Registration) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *Registration) register(ctx context.Context) error {
	var result regResponse
	status, err := r.post(ctx, "/servers/register", regRequest{
		Name:       config.Server.Name,
		Address:    r.address,
		Mode:       "freeze",
		Level:      r.server.level.Name,
		Players:    r.server.ConnectedPlayers(),
		MaxPlayers: config.Server.MaxPlayers,
		Version:    config.Server.Version,
		Region:     r.region,
	}, &result)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("unexpected status: %d", status)
	}

	r.serverID = result.ID
	log.Printf("[registration] registered with master (id=%s)", r.serverID)
	return nil
}

func (r *Registration) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.sendHeartbeat(ctx); err != nil {
				log.Printf("[registration] heartbeat failed: %v", err)
			}
		}
	}
}

func (r *Registration) sendHeartbeat(ctx context.Context) error {
	status, err := r.post(ctx, "/servers/heartbeat", heartbeatRequest{
		ID:      r.serverID,
		Players: r.server.ConnectedPlayers(),
	}, nil)
	if err != nil {
		return err
	}

	switch status {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		log.Println("[registration] master lost our registration, re-registering")
		return r.register(ctx)
	}
	return fmt.Errorf("unexpected status: %d", status)
}

// post sends body as JSON and decodes the response into out when non-nil.
func (r *Registration) post(ctx context.Context, path string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.masterURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode: %w", err)
		}
	}
	return resp.StatusCode, nil
}
