// Package connection acquires verified connection parameters. The Acquirer
// alternates between collecting parameters and verifying them until a check
// passes or the user aborts. There is no attempt limit.
package connection
