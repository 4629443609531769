// Command hash-password prints a bcrypt hash for DEMO_USER_PASSWORD_HASH.
// The password is read from the first line of stdin so it never shows up
// in shell history or the process list.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/auth"
)

func main() {
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		log.Fatalf("read password: %v", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		log.Fatal("password must not be empty")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	fmt.Println(hash)
}
