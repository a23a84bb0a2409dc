package reportingclient

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"strings"
	"time"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gaze-network/crowdsale/pkg/httpclient"
	"github.com/gaze-network/crowdsale/pkg/logger"
	"github.com/gaze-network/crowdsale/pkg/logger/slogx"
)

const (
	SignatureHeader = "X-Report-Signature"
	SignerHeader    = "X-Report-Signer"
)

type Config struct {
	Disabled   bool          `mapstructure:"disabled"`
	BaseURL    string        `mapstructure:"base_url"`
	Name       string        `mapstructure:"name"`
	WebsiteURL string        `mapstructure:"website_url"`
	APIURL     string        `mapstructure:"api_url"`
	SigningKey string        `mapstructure:"signing_key"` // hex encoded secp256k1 private key, optional
	Timeout    time.Duration `mapstructure:"timeout"`
}

type ReportingClient struct {
	httpClient *httpclient.Client
	signingKey *ecdsa.PrivateKey
	config     Config
}

const defaultBaseURL = "https://sale.api.gaze.network"

func New(config Config) (*ReportingClient, error) {
	if config.Name == "" {
		return nil, errors.New("reporting.name config is required if reporting is enabled")
	}
	baseURL := utils.Default(config.BaseURL, defaultBaseURL)
	httpClient, err := httpclient.New(baseURL, httpclient.Config{Timeout: config.Timeout})
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}

	client := &ReportingClient{
		httpClient: httpClient,
		config:     config,
	}
	if config.SigningKey != "" {
		key, err := ethcrypto.HexToECDSA(strings.TrimPrefix(config.SigningKey, "0x"))
		if err != nil {
			return nil, errors.Wrap(err, "invalid reporting.signing_key")
		}
		client.signingKey = key
	}
	return client, nil
}

// Signer returns the address whose key signs reports, or the zero address when reports are unsigned.
func (r *ReportingClient) Signer() ethcommon.Address {
	if r.signingKey == nil {
		return ethcommon.Address{}
	}
	return ethcrypto.PubkeyToAddress(r.signingKey.PublicKey)
}

type ContributionReportPayload struct {
	Name           string    `json:"name"`
	SaleAddress    string    `json:"saleAddress"`
	ContributionID uint64    `json:"contributionId"`
	Sender         string    `json:"sender"`
	Amount         string    `json:"amount"`
	BonusPercent   uint64    `json:"bonusPercent"`
	TotalTokens    string    `json:"totalTokens"`
	Timestamp      time.Time `json:"timestamp"`
}

func (r *ReportingClient) SubmitContributionReport(ctx context.Context, payload ContributionReportPayload) error {
	payload.Name = r.config.Name
	return errors.WithStack(r.submit(ctx, "/v1/report/contribution", payload))
}

type FinalizationReportPayload struct {
	Name             string    `json:"name"`
	SaleAddress      string    `json:"saleAddress"`
	IssuedSupply     string    `json:"issuedSupply"`
	FinalTotalSupply string    `json:"finalTotalSupply"`
	FoundersTokens   string    `json:"foundersTokens"`
	BountyTokens     string    `json:"bountyTokens"`
	Timestamp        time.Time `json:"timestamp"`
}

func (r *ReportingClient) SubmitFinalizationReport(ctx context.Context, payload FinalizationReportPayload) error {
	payload.Name = r.config.Name
	return errors.WithStack(r.submit(ctx, "/v1/report/finalization", payload))
}

type NodeReportPayload struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	SaleAddress string `json:"saleAddress"`
	WebsiteURL  string `json:"websiteURL,omitempty"`
	APIURL      string `json:"apiURL,omitempty"`
}

func (r *ReportingClient) SubmitNodeReport(ctx context.Context, module string, saleAddress string) error {
	payload := NodeReportPayload{
		Name:        r.config.Name,
		Type:        module,
		SaleAddress: saleAddress,
		WebsiteURL:  r.config.WebsiteURL,
		APIURL:      r.config.APIURL,
	}
	if err := r.submit(ctx, "/v1/report/node", payload); err != nil {
		return errors.WithStack(err)
	}
	logger.InfoContext(ctx, "node report submitted", slogx.Any("payload", payload))
	return nil
}

func (r *ReportingClient) submit(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "can't marshal payload")
	}

	header := make(map[string]string)
	if r.signingKey != nil {
		signature, err := ethcrypto.Sign(ethcrypto.Keccak256(body), r.signingKey)
		if err != nil {
			return errors.Wrap(err, "can't sign payload")
		}
		header[SignatureHeader] = hexutil.Encode(signature)
		header[SignerHeader] = r.Signer().Hex()
	}

	resp, err := r.httpClient.Post(ctx, path, httpclient.RequestOptions{
		Body:   body,
		Header: header,
	})
	if err != nil {
		return errors.Wrap(err, "can't send request")
	}
	if !resp.IsSuccess() {
		return errors.Errorf("report rejected with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	logger.DebugContext(ctx, "report submitted", slogx.String("path", path))
	return nil
}
