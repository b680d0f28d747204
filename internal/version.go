package internal

// Version is the saathi release version
const Version = "0.3.0"
