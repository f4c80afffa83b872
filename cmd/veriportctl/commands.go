package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	appealpg "veriport/internal/appeal/store/postgres"
	authservice "veriport/internal/auth/service"
	authpg "veriport/internal/auth/store/postgres"
	"veriport/internal/employee"
	employeepg "veriport/internal/employee/store/postgres"
	"veriport/internal/platform/postgres"
	"veriport/internal/sequence"
	verificationpg "veriport/internal/verification/store/postgres"
	id "veriport/pkg/domain"
	"veriport/pkg/platform/audit/publisher"
	auditpg "veriport/pkg/platform/audit/store/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the core and HR directory schema migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		db, err := postgres.Open(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := postgres.MigrateCore(ctx, db); err != nil {
			return fmt.Errorf("migrate core schema: %w", err)
		}

		pool, err := postgres.OpenPool(ctx, cfg.Storage.EmployeeDatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := postgres.MigrateHR(ctx, pool); err != nil {
			return fmt.Errorf("migrate hr schema: %w", err)
		}
		log.InfoContext(ctx, "migrations applied")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load authoritative data",
}

var seedFile string

var seedEmployeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "Upsert employee records from a YAML file into the HR directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		f, err := os.Open(seedFile)
		if err != nil {
			return err
		}
		defer f.Close()
		records, err := employee.LoadSeed(f)
		if err != nil {
			return err
		}

		pool, err := postgres.OpenPool(ctx, cfg.Storage.EmployeeDatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := employeepg.New(pool).UpsertBatch(ctx, records); err != nil {
			return fmt.Errorf("upsert employees: %w", err)
		}
		log.InfoContext(ctx, "employee directory seeded", "count", len(records), "file", seedFile)
		return nil
	},
}

var (
	accountEmail    string
	accountPassword string
	accountName     string
	accountCompany  string
	accountRole     string
	accountPerms    []string
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage portal accounts",
}

var accountsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account with an explicit role",
	Long: `Create an account with an explicit role.

Roles: verifier, hr_staff, hr_manager, super_admin.
Permissions default to the role's defaults unless --perm is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		role, err := id.ParseRole(accountRole)
		if err != nil {
			return err
		}
		var perms []id.Permission
		for _, p := range accountPerms {
			perms = append(perms, id.Permission(strings.TrimSpace(p)))
		}

		db, err := postgres.Open(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		auditor := publisher.NewPublisher(auditpg.New(db), publisher.WithLogger(log))
		svc := authservice.New(authpg.New(db), nil, auditor, authservice.WithLogger(log))
		account, err := svc.CreateAccount(ctx, authservice.CreateAccountCommand{
			Email:       accountEmail,
			Password:    accountPassword,
			FullName:    accountName,
			CompanyName: accountCompany,
			Role:        role,
			Permissions: perms,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) id=%s\n", account.Email, account.Role, account.ID)
		return nil
	},
}

var idsCmd = &cobra.Command{
	Use:   "ids",
	Short: "Inspect identifier sequences",
}

var idsNextCmd = &cobra.Command{
	Use:       "next {verification|appeal}",
	Short:     "Print the next identifier the allocator would try",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"verification", "appeal"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		db, err := postgres.Open(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		var alloc *sequence.ScanAllocator
		switch args[0] {
		case "verification":
			alloc = sequence.NewScanAllocator(id.VerificationPrefix, verificationpg.New(db))
		default:
			alloc = sequence.NewScanAllocator(id.AppealPrefix, appealpg.New(db))
		}
		next, err := alloc.Allocate(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), next)
		return nil
	},
}

func init() {
	seedEmployeesCmd.Flags().StringVar(&seedFile, "file", "", "YAML file with an employees list")
	_ = seedEmployeesCmd.MarkFlagRequired("file")

	accountsCreateCmd.Flags().StringVar(&accountEmail, "email", "", "Login email")
	accountsCreateCmd.Flags().StringVar(&accountPassword, "password", "", "Initial password (at least 8 characters)")
	accountsCreateCmd.Flags().StringVar(&accountName, "name", "", "Full name")
	accountsCreateCmd.Flags().StringVar(&accountCompany, "company", "", "Company name")
	accountsCreateCmd.Flags().StringVar(&accountRole, "role", string(id.RoleHRStaff), "Account role")
	accountsCreateCmd.Flags().StringSliceVar(&accountPerms, "perm", nil, "Permission to grant (repeatable)")
	for _, name := range []string{"email", "password", "name"} {
		_ = accountsCreateCmd.MarkFlagRequired(name)
	}
}
