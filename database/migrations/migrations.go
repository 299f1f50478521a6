// Package migrations registers every schema migration. Each file calls
// migration.Register from init(), so importing this package from the
// CLI is enough to make the full set runnable.
package migrations
