package main

import (
	"fmt"
	"os"

	"github.com/qjawe/broker/internal"
	"github.com/qjawe/broker/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var configFile string

var rootCmd *cobra.Command

var log *zap.SugaredLogger

func init() {
	log = logger.Logger.Named("cli")

	cobra.OnInitialize(initConfig)

	rootCmd = &cobra.Command{
		Use:   "brokerd",
		Short: "commits funds into cross-ledger payment channel pairs",
		Run: func(cmd *cobra.Command, args []string) {
			internal.Start()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file")
	rootCmd.PersistentFlags().String("relayer-url", "", "URL to the relayer's JSON-RPC endpoint")
	rootCmd.PersistentFlags().String("database-url", "", "URL to a postgres database for the commit journal")
	rootCmd.PersistentFlags().String("min-funding-balance", "", "smallest committable balance in common units")
	rootCmd.PersistentFlags().String("rpc-ip", "127.0.0.1", "IP address to listen for RPC requests on")
	rootCmd.PersistentFlags().String("rpc-port", "8080", "port to listen for RPC requests on")
	rootCmd.PersistentFlags().StringSlice("markets", make([]string, 0), "markets to track, e.g. BTC/LTC")
	viper.BindPFlag("relayer-url", rootCmd.PersistentFlags().Lookup("relayer-url"))
	viper.BindPFlag("database-url", rootCmd.PersistentFlags().Lookup("database-url"))
	viper.BindPFlag("min-funding-balance", rootCmd.PersistentFlags().Lookup("min-funding-balance"))
	viper.BindPFlag("rpc-ip", rootCmd.PersistentFlags().Lookup("rpc-ip"))
	viper.BindPFlag("rpc-port", rootCmd.PersistentFlags().Lookup("rpc-port"))
	viper.BindPFlag("markets", rootCmd.PersistentFlags().Lookup("markets"))
	viper.SetDefault("rpc-ip", "127.0.0.1")
	viper.SetDefault("rpc-port", "8080")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func initConfig() {
	if configFile == "" {
		log.Info("no config file argument found")

		return
	}

	log.Infow("reading in config", "configFile", configFile)

	viper.SetConfigFile(configFile)

	if err := viper.ReadInConfig(); err != nil {
		log.Panicw("failed to read in config file", "err", err.Error())
	}
}
