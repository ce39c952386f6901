package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/CaioVictor3/Bus-Manager-App/internal/config"
	"github.com/CaioVictor3/Bus-Manager-App/internal/domain"
	apperrors "github.com/CaioVictor3/Bus-Manager-App/pkg/util"
)

// Client queries the ViaCEP address service. Every failure mode - bad
// format, unknown code, network trouble - surfaces as the single lookup
// error category and is never retried here.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a lookup client with a bounded request timeout.
func NewClient(cfg config.LookupConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout()},
	}
}

// viaCEPResponse mirrors the ViaCEP JSON payload.
type viaCEPResponse struct {
	Cep         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	Erro        bool   `json:"erro"`
}

// Lookup resolves an 8-digit postal code into an Address. The house
// number is left blank for the caller to fill in.
func (c *Client) Lookup(ctx context.Context, cep string) (domain.Address, error) {
	digits := domain.NormalizeCEP(cep)
	if len(digits) != 8 {
		return domain.Address{}, apperrors.NewLookupError("postal code must have 8 digits", nil)
	}

	url := fmt.Sprintf("%s/%s/json/", c.baseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Address{}, apperrors.NewLookupError("failed to build lookup request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Address{}, apperrors.NewLookupError("postal code service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Address{}, apperrors.NewLookupError(
			fmt.Sprintf("postal code service returned status %d", resp.StatusCode), nil)
	}

	var payload viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Address{}, apperrors.NewLookupError("invalid postal code response", err)
	}
	if payload.Erro {
		return domain.Address{}, apperrors.NewLookupError("postal code not found", nil)
	}

	return domain.Address{
		CEP:          domain.NormalizeCEP(payload.Cep),
		Street:       payload.Logradouro,
		Number:       "",
		Neighborhood: payload.Bairro,
		City:         payload.Localidade,
		State:        payload.UF,
		Complement:   payload.Complemento,
	}, nil
}
