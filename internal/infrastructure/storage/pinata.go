// Package storage implementa el puerto de pinning de objetos contra la API
// pública de Pinata (IPFS).
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/albaranes/albaranes-api/pkg/config"
)

const pinEndpoint = "https://api.pinata.cloud/pinning/pinFileToIPFS"

// PinataClient sube blobs (firmas, logos) a Pinata y devuelve la URL pública
// en el gateway configurado. Implementa ports.Pinner.
type PinataClient struct {
	apiKey     string
	apiSecret  string
	gatewayURL string
	httpClient *http.Client
}

// NewPinataClient construye el cliente con las credenciales de configuración.
func NewPinataClient(cfg config.PinataConfig) *PinataClient {
	return &PinataClient{
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		gatewayURL: strings.TrimRight(cfg.GatewayURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// Pin sube el blob como archivo multipart y devuelve la URL en el gateway.
func (c *PinataClient) Pin(ctx context.Context, data []byte, filename string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("pinata: preparar multipart: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("pinata: escribir blob: %w", err)
	}

	metadata, _ := json.Marshal(map[string]string{"name": filename})
	if err := writer.WriteField("pinataMetadata", string(metadata)); err != nil {
		return "", fmt.Errorf("pinata: escribir metadata: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("pinata: cerrar multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, pinEndpoint, &body)
	if err != nil {
		return "", fmt.Errorf("pinata: crear request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("pinata_api_key", c.apiKey)
	req.Header.Set("pinata_secret_api_key", c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("pinata: enviar request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("pinata: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pinata: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out pinResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("pinata: decodificar respuesta: %w", err)
	}
	if out.IpfsHash == "" {
		return "", fmt.Errorf("pinata: respuesta sin IpfsHash")
	}

	return c.gatewayURL + "/" + out.IpfsHash, nil
}
