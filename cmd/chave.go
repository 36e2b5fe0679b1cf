package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corretora-saude/api-formulario/internal/utils"
)

var chaveBytes int

var chaveAdminCmd = &cobra.Command{
	Use:   "chave-admin",
	Short: "Gera uma chave administrativa e o hash para ADMIN_KEY_HASH",
	RunE: func(cmd *cobra.Command, args []string) error {
		chave, err := utils.GerarChave(chaveBytes)
		if err != nil {
			return err
		}
		hash, err := utils.HashChave(chave)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "chave: %s\nADMIN_KEY_HASH=%s\n", chave, hash)
		return nil
	},
}

func init() {
	chaveAdminCmd.Flags().IntVar(&chaveBytes, "bytes", 32, "tamanho da chave em bytes")
}
