package verify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agentstation/fpdsverify/pkg/archive"
	"github.com/agentstation/fpdsverify/pkg/errors"
	"github.com/agentstation/fpdsverify/pkg/fpds"
	"github.com/agentstation/fpdsverify/pkg/logging"
)

// tolerance is the absolute difference under which an extracted total and
// a claimed amount are considered equal (0.01 currency units).
var tolerance = decimal.New(1, -2)

// ProgressFunc is called after each record is finalized, with the record's
// zero-based index in the batch.
type ProgressFunc func(index int, record ContractRecord)

// Verifier reconciles contract records against FPDS. One Verifier carries
// one HTTP client across the whole batch so connections are reused.
type Verifier struct {
	run      archive.RunContext
	client   *http.Client
	writer   *archive.Writer
	now      func() time.Time
	progress ProgressFunc
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithHTTPClient sets the HTTP client used for fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(v *Verifier) {
		v.client = client
	}
}

// WithClock sets the time source used for accessed-at timestamps.
func WithClock(now func() time.Time) Option {
	return func(v *Verifier) {
		v.now = now
	}
}

// WithProgress sets a callback invoked after each record is finalized.
func WithProgress(fn ProgressFunc) Option {
	return func(v *Verifier) {
		v.progress = fn
	}
}

// New creates a Verifier that archives evidence under the run's directory.
func New(run archive.RunContext, opts ...Option) *Verifier {
	v := &Verifier{
		run:    run,
		client: &http.Client{},
		writer: archive.NewWriter(run),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify reconciles a single record: fetch, archive, extract, classify.
// Each record is attempted exactly once; no retries. Per-record failures
// are recorded on the returned record. The returned error is non-nil only
// for archive write failures, which are fatal to the whole run because
// they mean the evidence trail cannot be trusted.
func (v *Verifier) Verify(ctx context.Context, record ContractRecord) (ContractRecord, error) {
	log := logging.FromContext(ctx)

	body, fetchErr := v.fetch(ctx, record.SourceLink)
	if fetchErr != nil {
		log.Warn().Err(fetchErr).Str("link", record.SourceLink).Msg("Fetch failed")
		record.Status = StatusError
		record.Error = fmt.Sprintf("request failed: %s", fetchErr)
		return record, nil
	}

	accessedAt := v.now()
	record.AccessedAt = &accessedAt

	timestamp := accessedAt.Format(archive.TimestampLayout)
	archiveID := archive.GenerateID(record.SourceLink, timestamp)

	entry, err := v.writer.Store(body, archiveID, record.SourceLink, accessedAt)
	if err != nil {
		return record, err
	}
	record.ArchiveID = entry.ArchiveID

	record.Current, record.Total = fpds.ExtractAmounts(body)

	record = classify(record)
	log.Debug().
		Str("archive_id", record.ArchiveID).
		Str("status", string(record.Status)).
		Msg("Record reconciled")

	return record, nil
}

// VerifyAll reconciles all records sequentially, in input order, reusing
// one HTTP client. A record's failure never aborts the batch; archive
// write failures do.
func (v *Verifier) VerifyAll(ctx context.Context, records []ContractRecord) ([]ContractRecord, error) {
	log := logging.FromContext(ctx)
	log.Info().Int("records", len(records)).Str("archive_dir", v.run.Dir).Msg("Verifying contracts")

	results := make([]ContractRecord, 0, len(records))
	for i, record := range records {
		verified, err := v.Verify(ctx, record)
		if err != nil {
			return nil, err
		}
		results = append(results, verified)

		if v.progress != nil {
			v.progress(i, verified)
		}
	}

	return results, nil
}

// fetch retrieves the contract page. Any transport failure or non-2xx
// response is returned as a FetchError.
func (v *Verifier) fetch(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", errors.WrapFetch(link, 0, err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return "", errors.WrapFetch(link, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.NewFetchError(link, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.WrapFetch(link, resp.StatusCode, err)
	}

	return string(body), nil
}

// classify applies the comparison rule: the extracted total contract value
// must match the claimed saved amount within the tolerance.
func classify(record ContractRecord) ContractRecord {
	if record.Total.BaseAndAllOptions == nil {
		record.Status = StatusError
		record.Error = "could not extract total contract value from FPDS"
		return record
	}

	diff := record.Total.BaseAndAllOptions.Sub(record.ClaimedSaved).Abs()
	if diff.LessThan(tolerance) {
		record.Status = StatusVerified
	} else {
		record.Status = StatusMismatch
	}
	return record
}
