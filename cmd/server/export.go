package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fleet-tracker/backend/internal/dto"
	"fleet-tracker/backend/internal/repository"
	"fleet-tracker/backend/internal/service"
)

// ExportOptions export 子命令参数
type ExportOptions struct {
	Out      string
	DateFrom string
	DateTo   string
	Status   string
	Sort     string
}

// filtered 任一筛选条件非空即按筛选导出
func (o *ExportOptions) filtered() bool {
	return o.DateFrom != "" || o.DateTo != "" || o.Status != "" || o.Sort != ""
}

// NewExportCommand 不经 HTTP 直接导出 Excel 报表
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the records report to an .xlsx file",
		Long: `Write the records report to an .xlsx file.

Without filters every record is exported ordered by date. Any of
--date-from, --date-to, --status or --sort switches to a filtered export.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "输出文件（默认 report_YYYYMMDD_HHMM_xxxxxxxx.xlsx）")
	cmd.Flags().StringVar(&opts.DateFrom, "date-from", "", "起始日期 YYYY-MM-DD（含）")
	cmd.Flags().StringVar(&opts.DateTo, "date-to", "", "结束日期 YYYY-MM-DD（含）")
	cmd.Flags().StringVar(&opts.Status, "status", "", "work / stop / repair / holiday")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "排序键，默认 "+repository.DefaultSort)

	return cmd
}

func runExport(rootOpts *RootOptions, opts *ExportOptions, cmd *cobra.Command) error {
	for _, d := range []string{opts.DateFrom, opts.DateTo} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", d)
		}
	}

	a, err := bootstrap(rootOpts)
	if err != nil {
		return err
	}
	defer a.close()

	req := &dto.ExportRequest{
		RecordListRequest: dto.RecordListRequest{
			DateFrom: opts.DateFrom,
			DateTo:   opts.DateTo,
			Status:   opts.Status,
			Sort:     opts.Sort,
		},
	}
	if opts.filtered() {
		req.Export = "filtered"
	}

	svc := service.NewExportService(repository.NewRepository(a.db), a.cfg.Export, a.logger)
	f, err := svc.Build(cmd.Context(), req)
	if err != nil {
		return err
	}
	defer f.Close()

	out := opts.Out
	if out == "" {
		out = service.ExportFilename(time.Now())
	}
	if err := f.SaveAs(out); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", out, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
