package passgen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/cardcraft/internal/common"
	"github.com/dmitrijs2005/cardcraft/internal/filex"
	"github.com/dmitrijs2005/cardcraft/internal/models"
	"github.com/dmitrijs2005/cardcraft/internal/netx"
	"github.com/dmitrijs2005/cardcraft/internal/pkpass"
	"github.com/dmitrijs2005/cardcraft/internal/vcard"
)

type App struct {
	opts   *Options
	stdin  io.Reader
	stdout io.Writer
}

func NewApp(opts *Options, stdin io.Reader, stdout io.Writer) *App {
	return &App{opts: opts, stdin: stdin, stdout: stdout}
}

// Run reads the card, renders it and writes the result. It returns the path
// written.
func (a *App) Run(ctx context.Context) (string, error) {
	raw, err := a.readInput(ctx)
	if err != nil {
		return "", err
	}
	card, err := DecodeCard(raw)
	if err != nil {
		return "", err
	}

	var (
		data   []byte
		out    = a.opts.Out
		signed bool
	)

	switch a.opts.Format {
	case FormatVCard:
		data = []byte(vcard.Generate(card))
		if out == "" {
			out = card.FileStem("contact") + ".vcf"
		}
	default:
		builder, err := a.builder()
		if err != nil {
			return "", err
		}
		url := a.opts.URL
		if url == "" {
			url = common.DefaultBaseURL
		}
		p, err := builder.Build(card, url)
		if err != nil {
			return "", err
		}
		data, signed = p.Data, p.Signed
		if out == "" {
			out = card.FileStem("card") + ".pkpass"
		}
	}

	if err := filex.WriteFile(out, data); err != nil {
		return "", err
	}

	if a.opts.Format == FormatVCard {
		fmt.Fprintf(a.stdout, "wrote %s (%d bytes)\n", out, len(data))
	} else {
		fmt.Fprintf(a.stdout, "wrote %s (%d bytes, signed=%t)\n", out, len(data), signed)
	}
	return out, nil
}

func (a *App) builder() (*pkpass.Builder, error) {
	opts := []pkpass.Option{pkpass.WithIdentity(pkpass.Identity{
		PassTypeIdentifier: a.opts.PassTypeIdentifier,
		TeamIdentifier:     a.opts.TeamIdentifier,
	})}

	if a.opts.CertPath != "" {
		pw, err := certificatePassword(a.stdout)
		if err != nil {
			return nil, err
		}
		signer, err := pkpass.LoadPKCS7Signer(a.opts.CertPath, pw, a.opts.WWDRPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pkpass.WithSigner(signer))
	}

	return pkpass.NewBuilder(opts...), nil
}

func (a *App) readInput(ctx context.Context) ([]byte, error) {
	switch in := a.opts.In; {
	case in == "-":
		return io.ReadAll(a.stdin)
	case strings.HasPrefix(in, "http://"), strings.HasPrefix(in, "https://"):
		return netx.Fetch(ctx, in)
	default:
		// #nosec G304 -- operator-supplied input path
		b, err := os.ReadFile(in)
		if err != nil {
			return nil, fmt.Errorf("read card: %w", err)
		}
		return b, nil
	}
}

// DecodeCard accepts bare card JSON or a get-card response, whose fields
// sit under "card".
func DecodeCard(raw []byte) (models.CardData, error) {
	var envelope struct {
		Card json.RawMessage `json:"card"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return models.CardData{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	if len(envelope.Card) > 0 && string(envelope.Card) != "null" {
		raw = envelope.Card
	}

	var card models.CardData
	if err := json.Unmarshal(raw, &card); err != nil {
		return models.CardData{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return card, nil
}
