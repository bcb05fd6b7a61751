// Package models provides shared data models for create-electron-app.
//
// # Answers
//
// [Answers] holds every choice the user makes before a project is generated:
// metadata written into package.json, the package manager used to install
// dependencies, the selected features and the selected scripts.
//
//	a := &models.Answers{AppName: "my-app", PackageManager: models.PackageManagerNPM}
//	if err := a.Validate(); err != nil {
//	    return err
//	}
//
// # Package Managers
//
// Three package managers are supported:
//   - npm (default)
//   - yarn
//   - pnpm
//
// Use [PackageManager] and its IsValid method to check user input.
package models
