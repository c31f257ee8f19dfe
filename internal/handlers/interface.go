package handlers

import (
	"context"
	"sync"
	"time"

	"atlas/internal/imaging"
)

// URLSigner issues short-lived signed URLs for blob keys.
type URLSigner interface {
	GetSignedURL(ctx context.Context, key string, duration time.Duration) (string, error)
}

var (
	pipeline   *imaging.Pipeline
	urlSigner  URLSigner
	registryMu sync.RWMutex
)

// RegisterPipeline sets the ingestion pipeline used by upload handlers.
func RegisterPipeline(p *imaging.Pipeline) {
	registryMu.Lock()
	defer registryMu.Unlock()
	pipeline = p
}

// GetPipeline returns the registered ingestion pipeline.
func GetPipeline() *imaging.Pipeline {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return pipeline
}

// RegisterURLSigner sets the signer used for private-bucket fetches.
func RegisterURLSigner(s URLSigner) {
	registryMu.Lock()
	defer registryMu.Unlock()
	urlSigner = s
}

// GetURLSigner returns the registered URL signer.
func GetURLSigner() URLSigner {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return urlSigner
}
