// Package present routes user actions to sub-screens. Regular devices get an
// anchored overlay wrapped in its own navigation container; compact devices
// push the screen onto the navigation stack. Device class policy lives only
// here.
package present
