package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/rpdform/internal/domain"
	"github.com/alexanderramin/rpdform/internal/form"
	"github.com/spf13/cobra"
)

var errMultipleRecords = errors.New("more than one record needs --batch")

func newEmitCmd(app *App) *cobra.Command {
	var batch bool
	var output string

	cmd := &cobra.Command{
		Use:   "emit FILE",
		Short: "Validate selections from a JSON file and print the automation script",
		Long: `Reads one selection object or an array of them ("-" reads stdin). Keys are
the form field names (sinifSube, ogrenci, rpdHizmetTuru, asama1, asama2,
asama3, gorusmeTarihi, gorusmeBaslamaSaati, gorusmeBitisSaati, calismaYeri)
and values are system codes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			sels, err := decodeSelections(data)
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			recs, err := emitRecords(app, sels, batch)
			if err != nil {
				return err
			}
			return writeScript(cmd, app, recs, batch, output)
		},
	}

	cmd.Flags().BoolVar(&batch, "batch", false, "treat the file as one batch")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the script to a file instead of stdout")

	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

// decodeSelections accepts a single JSON object or an array of them.
func decodeSelections(data []byte) ([]domain.Selection, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var sel domain.Selection
		if err := json.Unmarshal(data, &sel); err != nil {
			return nil, err
		}
		return []domain.Selection{sel}, nil
	}
	var sels []domain.Selection
	if err := json.Unmarshal(data, &sels); err != nil {
		return nil, err
	}
	return sels, nil
}

// emitRecords runs every selection through a machine the way the wizard
// would and returns the emitted records.
func emitRecords(app *App, sels []domain.Selection, batch bool) ([]form.Record, error) {
	if len(sels) == 0 {
		return nil, form.ErrEmptyBatch
	}
	if len(sels) > 1 && !batch {
		return nil, fmt.Errorf("%d records: %w", len(sels), errMultipleRecords)
	}

	mode := form.ModeSingle
	if batch {
		mode = form.ModeBatch
	}
	m := form.NewMachine(mode)
	r := app.Data.Resolver()

	for i, sel := range sels {
		dropped, err := applySelection(m, r, sel)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		for _, f := range dropped {
			app.logger().Warn("dropped unknown code", "record", i+1, "field", string(f), "value", sel.Get(f))
		}
		if _, err := m.Submit(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}

	if batch {
		return m.FinishBatch()
	}
	return m.Output(), nil
}
