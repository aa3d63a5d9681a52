package model

// Version is the current editpath release.
const Version = "0.3.1"
