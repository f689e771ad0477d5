package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"

	"wellness-report/alerts"
	"wellness-report/auth"
	"wellness-report/chart"
	"wellness-report/config"
	"wellness-report/errors"
	"wellness-report/filter"
	"wellness-report/kpi"
	"wellness-report/metrics"
	"wellness-report/models"
	"wellness-report/parser"
	"wellness-report/report"
)

func main() {
	// Define flags
	data := flag.String("data", "", "Record store JSON file (required)")
	usersPath := flag.String("users", "", "User store JSON file (enables -username/-password)")
	username := flag.String("username", "", "Username to resolve against the user store")
	password := flag.String("password", "", "Password for -username")
	reportKind := flag.String("report", "records", "Report: records|alerts|charts|general|site|personal")
	format := flag.String("format", "text", "Output format: text|json|csv|pdf")
	site := flag.String("site", "", "Filter by site (\"All\"/\"Todas\" = no constraint)")
	date := flag.String("date", "", "Filter by date (YYYY-MM-DD)")
	employee := flag.String("employee", "", "Employee name for the personal report")
	rulesPath := flag.String("rules", "", "YAML rule-threshold override file")
	out := flag.String("out", "", "Output file (default: stdout for text/json, convention name for csv/pdf)")
	metricsAddr := flag.String("metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	pushGateway := flag.String("push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	wait := flag.Bool("wait", false, "Keep process running after completion to allow for metric scraping")

	// Parse command-line flags
	flag.Parse()

	// Start metrics server if address provided
	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			fmt.Printf("Metrics server listening on %s/metrics\n", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				fmt.Printf("Metrics server error: %v\n", err)
			}
		}()
	}

	// Validate required input flag
	if *data == "" {
		fmt.Println("Error: -data flag is required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	validFormats := map[string]bool{"text": true, "json": true, "csv": true, "pdf": true}
	if !validFormats[*format] {
		fmt.Printf("Error: format must be one of: text, json, csv, pdf (got: %s)\n", *format)
		os.Exit(1)
	}
	validReports := map[string]bool{"records": true, "alerts": true, "charts": true, "general": true, "site": true, "personal": true}
	if !validReports[*reportKind] {
		fmt.Printf("Error: report must be one of: records, alerts, charts, general, site, personal (got: %s)\n", *reportKind)
		os.Exit(1)
	}

	rules := config.Default()
	if *rulesPath != "" {
		loaded, err := config.Load(*rulesPath)
		if err != nil {
			fmt.Printf("Error loading rules file: %v\n", err)
			os.Exit(1)
		}
		rules = loaded
	}

	// Open input file
	file, err := os.Open(*data)
	if err != nil {
		fmt.Printf("Error: %v\n", &errors.StoreError{Path: *data, Err: err})
		os.Exit(1)
	}
	defer file.Close()

	records, err := parser.Parse(file)
	if err != nil {
		fmt.Printf("Error: %v\n", &errors.StoreError{Path: *data, Err: err})
		os.Exit(1)
	}
	metrics.ResetRunGauges()
	metrics.RecordsIngestedTotal.Add(float64(len(records)))

	// Resolve an identity when a user store and credentials are given.
	// Employees only ever see their own records; admins fall back to
	// their home site when no explicit -site filter is set.
	if *usersPath != "" && *username != "" {
		user, err := loadAndAuthenticate(*usersPath, *username, *password)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if user.Role != "admin" {
			*reportKind = "personal"
			*employee = user.Name()
		} else if *site == "" {
			*site = user.Site
		}
	}

	if *reportKind == "site" && *site == "" {
		fmt.Println("Error: -site is required for the site report")
		os.Exit(1)
	}
	if *reportKind == "personal" && *employee == "" {
		fmt.Println("Error: -employee (or a logged-in user) is required for the personal report")
		os.Exit(1)
	}

	filtered := filter.Apply(records, *date, *site)
	metrics.RecordsFiltered.Set(float64(len(filtered)))

	alertList := alerts.Detect(filtered, rules)
	snap := kpi.Compute(filtered, rules)
	observeRun(alertList, snap)

	start := time.Now()
	output, fileName, err := render(records, filtered, alertList, snap, rules, *reportKind, *format, *site, *employee)
	if err != nil {
		fmt.Printf("Error rendering report: %v\n", err)
		os.Exit(1)
	}
	metrics.RenderDurationSeconds.WithLabelValues(*format).Observe(time.Since(start).Seconds())
	metrics.ReportBytes.WithLabelValues(*format).Observe(float64(len(output)))

	if err := write(output, *format, *out, fileName); err != nil {
		fmt.Printf("Error writing output: %v\n", err)
		os.Exit(1)
	}

	// Handle metrics pushing or waiting
	if *pushGateway != "" {
		jobName := "wellness_report"
		if err := push.New(*pushGateway, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			fmt.Fprintf(os.Stderr, "Error pushing to Pushgateway: %v\n", err)
		} else {
			fmt.Println("\nMetrics successfully pushed to Pushgateway")
		}
	}

	if *wait && *metricsAddr != "" {
		fmt.Println("\nProcess kept alive for metric scraping. Press Ctrl+C to exit.")
		// Wait for interrupt signal
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		fmt.Println("\nExiting...")
	} else if *metricsAddr != "" && *pushGateway == "" {
		// Small delay to allow final scrape if not waiting explicitly
		// but typically batch jobs should use pushgateway or wait
		time.Sleep(100 * time.Millisecond)
	}
}

func loadAndAuthenticate(usersPath, username, password string) (*models.User, error) {
	f, err := os.Open(usersPath)
	if err != nil {
		return nil, &errors.StoreError{Path: usersPath, Err: err}
	}
	defer f.Close()
	users, err := parser.ParseUsers(f)
	if err != nil {
		return nil, &errors.StoreError{Path: usersPath, Err: err}
	}
	return auth.Authenticate(username, password, users)
}

// render produces the report bytes and the conventional file name for
// the chosen report/format combination. The site and personal reports
// scope themselves from the full record set; every other report works on
// the pre-filtered collection.
func render(records, filtered []models.ShiftRecord, alertList []models.Alert, snap models.KPISnapshot, rules config.Rules, reportKind, format, site, employee string) ([]byte, string, error) {
	// The personal report is scoped to one employee on every format, not
	// just the PDF path: employees only ever see their own records.
	if reportKind == "personal" && format != "pdf" {
		filtered = filter.ByEmployee(records, employee)
		alertList = alerts.Detect(filtered, rules)
		snap = kpi.Compute(filtered, rules)
	}

	switch format {
	case "csv":
		switch reportKind {
		case "personal":
			return report.CSV(filtered), report.PersonalCSVName(employee), nil
		case "site":
			return report.CSVBySite(records, site), report.CSVFileName(site), nil
		default:
			name := site
			if name == "" {
				name = "todas"
			}
			return report.CSV(filtered), report.CSVFileName(name), nil
		}
	case "pdf":
		charts := chart.NewPNG()
		switch reportKind {
		case "alerts":
			b, err := report.AlertsPDF(alertList)
			return b, report.AlertsPDFName, err
		case "charts":
			b, err := report.ChartsPDF(filtered, rules, charts)
			return b, report.ChartsPDFName, err
		case "general":
			b, err := report.GeneralPDF(filtered, rules, charts)
			return b, report.GeneralPDFName, err
		case "site":
			b, err := report.SitePDF(records, site, rules)
			return b, report.SitePDFName(site), err
		case "personal":
			b, err := report.PersonalPDF(records, employee)
			return b, report.PersonalPDFName(employee), err
		default:
			b, err := report.RecordsPDF(filtered)
			return b, report.RecordsPDFName, err
		}
	case "json":
		return []byte(report.JSON(filtered, alertList, snap)), "", nil
	default: // "text"
		return []byte(report.Text(filtered, alertList, snap)), "", nil
	}
}

func write(output []byte, format, out, fileName string) error {
	switch {
	case out != "":
		return os.WriteFile(out, output, 0o644)
	case format == "pdf" || format == "csv":
		if err := os.WriteFile(fileName, output, 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", fileName)
		return nil
	default:
		fmt.Print(string(output))
		return nil
	}
}

// observeRun exports the run's business gauges.
func observeRun(alertList []models.Alert, snap models.KPISnapshot) {
	metrics.AlertsDetectedTotal.Set(float64(len(alertList)))
	metrics.MeanStress.Set(snap.MeanStress)
	metrics.PctAdequateRest.Set(snap.PctAdequateRest)
	for _, a := range alertList {
		for _, reason := range strings.Split(a.Reason, ", ") {
			metrics.AlertsByRule.WithLabelValues(reason).Inc()
		}
	}
}
