// backend/cmd/export/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"verseone/internal/adapters/out/local"
	usecase "verseone/internal/application/usecase"
	appcfg "verseone/internal/infra/config"
	"verseone/internal/platform/di/shared"
)

// export writes one order's CSV from the local store, using the same
// order_{orderId}_{epochMillis}.csv file name as the admin download.
//
//	go run ./cmd/export -order 007 -out ./exports
//	go run ./cmd/export -list
func main() {
	orderID := flag.String("order", "", "orderId to export")
	outDir := flag.String("out", ".", "output directory (- for stdout)")
	list := flag.Bool("list", false, "list orderIds and exit")
	flag.Parse()

	ctx := context.Background()

	cfg := appcfg.Load()
	// 出力専用: リモートには接続しない
	cfg.RemoteBackend = appcfg.RemoteNone
	cfg.StorageBucket = ""
	cfg.SendGridAPIKeySecret = ""

	inf, err := shared.NewInfra(ctx, cfg)
	if err != nil {
		log.Fatalf("[export] %v", err)
	}
	defer inf.Close()

	orders := usecase.NewOrderUsecase(local.NewOrderRepositoryLocal(inf.LocalStore), nil, nil)

	if *list {
		all, err := orders.List(ctx)
		if err != nil {
			log.Fatalf("[export] list: %v", err)
		}
		for _, o := range all {
			fmt.Printf("%s\t%s\t%s\t%d items\t%s\n",
				o.OrderID, o.Date, o.Customer.Name, o.ItemCount(), o.Total().StringFixed(2))
		}
		return
	}

	id := strings.TrimSpace(*orderID)
	if id == "" {
		flag.Usage()
		os.Exit(2)
	}

	filename, body, err := orders.ExportCSV(ctx, id)
	if err != nil {
		log.Fatalf("[export] order %s: %v", id, err)
	}

	if *outDir == "-" {
		fmt.Print(body)
		return
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("[export] %v", err)
	}
	path := filepath.Join(*outDir, filename)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		log.Fatalf("[export] write %s: %v", path, err)
	}
	log.Printf("[export] wrote %s", path)
}
