package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmotkit/asset-mgmt-accounting/internal/adapters/memory"
	"github.com/marmotkit/asset-mgmt-accounting/internal/cli"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/marmotkit/asset-mgmt-accounting/internal/dto"
	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/bootstrap"
	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/config"
)

const (
	cashAccount    = "00000000-0000-0000-0000-000000001101"
	feeIncome      = "00000000-0000-0000-0000-000000004101"
	operatingCosts = "00000000-0000-0000-0000-000000005102"
)

type harness struct {
	store   *memory.Store
	sources *memory.Sources
}

func newHarness() *harness {
	return &harness{store: memory.NewStore(), sources: memory.NewSources()}
}

func (h *harness) factory(ctx context.Context, logger *slog.Logger) (*bootstrap.App, error) {
	cfg := &config.Config{
		StorageDriver:     config.StorageMemory,
		JWTSecret:         "test-secret-key-that-is-long-enough",
		JWTExpiryDuration: time.Hour,
		Sync:              config.SyncConfig{LockTTL: time.Minute, DefaultDueDays: 30},
	}
	return bootstrap.New(ctx, cfg, logger, bootstrap.WithMemoryStore(h.store), bootstrap.WithSources(h.sources))
}

func (h *harness) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCommand(h.factory)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func (h *harness) postEntry(t *testing.T, id string, date time.Time, debit, credit string, amount int64) {
	t.Helper()
	require.NoError(t, h.store.SaveJournalEntry(context.Background(), domain.JournalEntry{
		EntryID:         id,
		EntryDate:       date,
		JournalNumber:   "JE-" + id,
		Description:     id,
		DebitAccountID:  debit,
		CreditAccountID: credit,
		Amount:          decimal.NewFromInt(amount),
	}))
}

func TestSyncFees_PrintsCreatedReceivables(t *testing.T) {
	h := newHarness()
	h.sources.SetFees(domain.PendingFee{
		FeeID:      "fee-1",
		MemberID:   "m-1",
		MemberNo:   "A001",
		MemberName: "Chen",
		Amount:     decimal.NewFromInt(1200),
	})

	out, _, err := h.run(t, "sync", "fees", "--actor", "user-7")
	require.NoError(t, err)

	var result domain.ReceivableSyncResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Created, 1)
	assert.Equal(t, "user-7", result.Created[0].CreatedBy)
	assert.Equal(t, 1, result.Report.Count(domain.OutcomeCreated))

	// A second run finds the source link and creates nothing.
	out, _, err = h.run(t, "sync", "fees")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Empty(t, result.Created)
	assert.Equal(t, 1, result.Report.Count(domain.OutcomeSkippedDuplicate))
}

func TestSyncPreClosing_RequiresPeriod(t *testing.T) {
	h := newHarness()

	_, _, err := h.run(t, "sync", "pre-closing", "--year", "2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"month" not set`)

	_, _, err = h.run(t, "sync", "pre-closing", "--year", "2025", "--month", "13")
	assert.ErrorContains(t, err, "invalid period")
}

func TestClosingLifecycle(t *testing.T) {
	h := newHarness()
	july := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	h.postEntry(t, "inc-1", july, cashAccount, feeIncome, 1000)
	h.postEntry(t, "exp-1", july, operatingCosts, cashAccount, 400)

	out, _, err := h.run(t, "closing", "create", "--year", "2025", "--month", "7", "--notes", "July")
	require.NoError(t, err)
	var created dto.MonthlyClosingResponse
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, domain.ClosingPending, created.Closing.Status)
	assert.True(t, created.Closing.NetAmount.Equal(decimal.NewFromInt(600)), "net was %s", created.Closing.NetAmount)

	_, _, err = h.run(t, "closing", "create", "--year", "2025", "--month", "7")
	assert.Error(t, err, "a period can only be closed once")

	out, _, err = h.run(t, "closing", "finalize", created.Closing.ClosingID)
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "finalized"`)

	out, _, err = h.run(t, "closing", "list", "--year", "2025")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "2025-07")
	assert.Contains(t, lines[1], "finalized")
	assert.Contains(t, lines[1], "600.00")
}

func TestClosingCreate_SyncFirstIncludesSummary(t *testing.T) {
	h := newHarness()

	out, _, err := h.run(t, "closing", "create", "--year", "2025", "--month", "8", "--sync-first")
	require.NoError(t, err)
	var created dto.MonthlyClosingResponse
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	require.NotNil(t, created.PreClosingSync)
	assert.Equal(t, 8, created.PreClosingSync.Month)
}

func TestUserCreate(t *testing.T) {
	h := newHarness()

	out, _, err := h.run(t, "user", "create", "--username", "alice", "--name", "Alice", "--password", "correct-horse")
	require.NoError(t, err)
	assert.Contains(t, out, "created user alice")

	user, err := h.store.FindUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	_, _, err = h.run(t, "user", "create", "--username", "bob", "--name", "Bob", "--password", "short")
	assert.Error(t, err)

	out, _, err = h.run(t, "user", "disable", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "user alice active=false")
	user, err = h.store.FindUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, user.IsActive)
}

func TestJobsTrigger_RejectsUnknownTask(t *testing.T) {
	h := newHarness()

	_, _, err := h.run(t, "jobs", "trigger", "accounting:unknown")
	assert.ErrorContains(t, err, "unsupported task")
}
