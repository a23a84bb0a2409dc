package common

const Version = "v0.1.0"
