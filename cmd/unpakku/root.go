/*
 *  MIT License
 *
 *  Copyright (c) 2025 Unpakku Contributors
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package main

import (
	"context"
	"strings"

	liblog "github.com/nabbar/golib/logger"
	logcfg "github.com/nabbar/golib/logger/config"
	loglvl "github.com/nabbar/golib/logger/level"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "UNPAKKU"

var (
	flagConfig  string
	flagVerbose bool
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "unpakku",
		Short:         "batch extractor and decoder for game-data containers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default $HOME/.unpakku.yaml)")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(unpackCmd())
	cmd.AddCommand(listFormatsCmd())

	return cmd
}

func initConfig(cmd *cobra.Command) error {
	if len(flagConfig) > 0 {
		viper.SetConfigFile(flagConfig)
	} else {
		viper.SetConfigName(".unpakku")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("$HOME")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, k := err.(viper.ConfigFileNotFoundError); !k && len(flagConfig) > 0 {
			return err
		}
	}

	return viper.BindPFlags(cmd.Flags())
}

// newLogger builds the process logger writing to stdout; verbose mode
// lowers the level to debug.
func newLogger() liblog.Logger {
	l := liblog.New(context.Background)

	_ = l.SetOptions(&logcfg.Options{
		Stdout: &logcfg.OptionsStd{
			DisableStack:     true,
			DisableTimestamp: false,
			EnableTrace:      false,
		},
	})

	if flagVerbose {
		l.SetLevel(loglvl.DebugLevel)
	} else {
		l.SetLevel(loglvl.WarnLevel)
	}

	return l
}
