// hashpass imprime o hash Argon2id de uma senha. Ferramenta do operador
// para trocar a credencial administradora semeada, editando o campo
// "password" em data/users.json fora da API.
package main

import (
	"fmt"
	"os"

	"github.com/conselhodigital/tutelar/internal/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: hashpass <senha>")
		os.Exit(1)
	}

	hash, err := auth.Hash(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "erro ao gerar hash: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
