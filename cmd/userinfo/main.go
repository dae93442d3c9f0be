package main

import (
	"context"
	"flag"
	"fmt"

	"resnet-portal/internal/common"
	"resnet-portal/internal/config"
	"resnet-portal/internal/models"
	"resnet-portal/internal/user"

	"go.uber.org/zap"
)

var (
	flagID  = flag.String("id", "", "account id to look up")
	flagIP  = flag.String("ip", "", "IP address to look up")
	flagMAC = flag.String("mac", "", "MAC address to look up")
)

func main() {
	flag.Parse()

	logger, cleanupLogger := common.InitializeLogger()
	defer cleanupLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()
	backends, cleanupBackends, err := common.InitializeBackends(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize backends", zap.Error(err))
	}
	defer cleanupBackends()

	view := user.NewView(user.NewResolver(backends...), cfg.Portal)

	var result *models.UserView
	switch {
	case *flagID != "":
		result, err = view.Get(ctx, *flagID)
	case *flagIP != "":
		result, err = view.FromIP(ctx, *flagIP)
	case *flagMAC != "":
		result, err = view.FromMAC(ctx, *flagMAC)
	default:
		logger.Fatal("One of -id, -ip or -mac is required")
	}
	if err != nil {
		logger.Fatal("Lookup failed", zap.Error(err))
	}

	printUserView(result)
}

func printUserView(v *models.UserView) {
	if v.Anonymous {
		common.PrintHeader("Anonymous — this address currently has no owner", common.DefaultWidth)
		return
	}

	common.PrintHeader(fmt.Sprintf("%s (%s) — %s", v.Name, v.ID, v.Backend), common.DefaultWidth)
	fmt.Printf("Address:  %s\n", v.Address)
	fmt.Printf("Mail:     %s\n", v.Mail)
	fmt.Printf("Status:   %s (connected: %v)\n", v.Status, v.HasConnection)
	fmt.Printf("Traffic:  %.1f KiB remaining\n", v.TrafficBalanceKB)
	fmt.Printf("IPs:      %v\n", v.IPs)
	fmt.Printf("MACs:     %v\n", v.MACs)

	fmt.Println("\nTraffic history (last 7 days):")
	for i, day := range v.TrafficHistory {
		fmt.Printf("%s %-9s in %12.1f KiB   out %12.1f KiB   credit %d\n",
			common.BoxPrefix(i == len(v.TrafficHistory)-1),
			day.Day, day.InputKB, day.OutputKB, day.Credit)
	}

	fmt.Printf("\nFinance balance: %s", v.FinanceBalance.StringFixed(2))
	if v.LastFinanceUpdate != nil {
		fmt.Printf(" (updated %s)", v.LastFinanceUpdate.Format("2006-01-02 15:04:05"))
	}
	fmt.Println()
	for i, tx := range v.Transactions {
		fmt.Printf("%s %s %10s  %-9s %s\n",
			common.BoxPrefix(i == len(v.Transactions)-1),
			tx.Timestamp.Format("2006-01-02"),
			tx.Amount.StringFixed(2), tx.Source, tx.Description)
	}

	common.PrintFooter("done", common.DefaultWidth)
}
