package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	csvexport "github.com/SscSPs/smart_wallet/internal/adapters/export/csv"
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	"github.com/SscSPs/smart_wallet/internal/core/services"
	"github.com/SscSPs/smart_wallet/internal/dto"
	"github.com/SscSPs/smart_wallet/internal/utils/accounting"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type backupCmd struct {
	output string
}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "write the wallet as a JSON backup" }
func (*backupCmd) Usage() string {
	return `walletctl backup [-o <file>]

  Writes every account, goal, setting and exchange rate. The password is not included.
`
}

func (c *backupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file (defaults to stdout)")
}

func (c *backupCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWallet(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	doc, err := w.Wallet.Backup(ctx)
	if err != nil {
		return fail(err)
	}

	var out io.Writer = os.Stdout
	if c.output != "" {
		f, err := os.Create(c.output)
		if err != nil {
			return fail(err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type restoreCmd struct {
	input string
}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "replace the wallet with a JSON backup" }
func (*restoreCmd) Usage() string {
	return `walletctl restore -i <file>

  Replaces all wallet data. Backups missing any field are rejected.
`
}

func (c *restoreCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Backup file")
}

func (c *restoreCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.input == "" {
		fmt.Fprintln(os.Stderr, "Error: -i is required")
		return subcommands.ExitUsageError
	}
	raw, err := os.ReadFile(c.input)
	if err != nil {
		return fail(err)
	}
	var doc domain.Backup
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fail(fmt.Errorf("decode backup: %w", err))
	}

	w, err := openWallet(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	if err := w.Wallet.Restore(ctx, doc); err != nil {
		return fail(err)
	}
	fmt.Printf("Restored %d accounts and %d goals.\n", len(doc.Accounts), len(doc.Goals))
	return subcommands.ExitSuccess
}

type summaryCmd struct{}

func (*summaryCmd) Name() string             { return "summary" }
func (*summaryCmd) Synopsis() string         { return "print balances and totals" }
func (*summaryCmd) Usage() string            { return "walletctl summary\n" }
func (*summaryCmd) SetFlags(_ *flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWallet(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	accounts, err := w.Wallet.ListAccounts(ctx, w.session.ID)
	if err != nil {
		return fail(err)
	}
	summary, err := w.Wallet.GetSummary(ctx, w.session.ID)
	if err != nil {
		return fail(err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, acc := range dto.ToAccountResponses(accounts) {
		fmt.Fprintf(tw, "%s\t%s\t%s %s\n", acc.ID, acc.Name, acc.FormattedBalance, acc.Symbol)
	}
	fmt.Fprintln(tw)
	base := domain.BaseCurrency
	for _, line := range []struct {
		label  string
		amount decimal.Decimal
	}{
		{"income", summary.TotalIncome},
		{"expenses", summary.TotalExpenses},
		{"liabilities", summary.TotalLiabilities},
		{"receivables", summary.TotalReceivables},
		{"net balance", summary.NetBalance},
		{"projected", summary.ProjectedNetBalance},
	} {
		fmt.Fprintf(tw, "%s\t%s %s\n", line.label, accounting.FormatAmount(line.amount, base), base.Details().Symbol)
	}
	if err := tw.Flush(); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

// rateFlags collects repeated -set CODE=RATE flags.
type rateFlags map[domain.Currency]decimal.Decimal

func (r rateFlags) String() string { return fmt.Sprint(map[domain.Currency]decimal.Decimal(r)) }

func (r rateFlags) Set(v string) error {
	code, value, ok := strings.Cut(v, "=")
	if !ok {
		return fmt.Errorf("expected CODE=RATE, got %q", v)
	}
	c, err := domain.ParseCurrency(code)
	if err != nil {
		return err
	}
	rate, err := decimal.NewFromString(value)
	if err != nil {
		return fmt.Errorf("invalid rate %q", value)
	}
	r[c] = rate
	return nil
}

type ratesCmd struct {
	set rateFlags
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "show or change exchange rates" }
func (*ratesCmd) Usage() string {
	return `walletctl rates [-set USD=550] [-set SAR=140]

  Rates are base-currency units per one unit of the currency.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	c.set = rateFlags{}
	f.Var(c.set, "set", "CODE=RATE to store (repeatable)")
}

func (c *ratesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWallet(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	settings, rates := w.Wallet.GetSettings(ctx)
	if len(c.set) > 0 {
		for cur, rate := range c.set {
			rates[cur] = rate
		}
		if err := w.Wallet.UpdateSettings(ctx, settings, rates); err != nil {
			return fail(err)
		}
		settings, rates = w.Wallet.GetSettings(ctx)
	}

	for _, cur := range domain.Currencies {
		fmt.Printf("%s\t%s\n", cur, rates.Rate(cur))
	}
	fmt.Printf("savings threshold %d, percentage %d%%\n", settings.SavingsThreshold, settings.SavingsPercentage)
	return subcommands.ExitSuccess
}

type statementCmd struct {
	account string
	dir     string
	typ     string
	search  string
	from    string
	to      string
	sheets  bool
}

func (*statementCmd) Name() string     { return "statement" }
func (*statementCmd) Synopsis() string { return "export an account statement" }
func (*statementCmd) Usage() string {
	return `walletctl statement -a <account> [-dir <dir>] [-type INCOME] [-q text] [-from YYYY-MM-DD] [-to YYYY-MM-DD] [-sheets]

  Writes a CSV file, or a new tab of the configured Google spreadsheet with -sheets.
`
}

func (c *statementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id, e.g. safe-yer")
	f.StringVar(&c.dir, "dir", ".", "Directory for the CSV file")
	f.StringVar(&c.typ, "type", "", "Only this transaction type")
	f.StringVar(&c.search, "q", "", "Description search")
	f.StringVar(&c.from, "from", "", "First day")
	f.StringVar(&c.to, "to", "", "Last day")
	f.BoolVar(&c.sheets, "sheets", false, "Export to Google Sheets")
}

func (c *statementCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: -a is required")
		return subcommands.ExitUsageError
	}
	filter, err := dto.ListTransactionsParams{
		Type:      domain.TransactionType(strings.ToUpper(c.typ)),
		Search:    c.search,
		StartDate: c.from,
		EndDate:   c.to,
	}.ToFilter()
	if err != nil {
		return fail(err)
	}

	w, err := openWallet(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	exporter := w.Export
	if !c.sheets {
		exporter = services.NewExportService(w.Wallet, csvexport.NewFileExporter(c.dir))
	}
	ref, err := exporter.ExportStatement(ctx, w.session.ID, c.account, filter)
	if err != nil {
		return fail(err)
	}
	fmt.Println(ref)
	return subcommands.ExitSuccess
}
