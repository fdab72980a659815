// Package upload implements the photo submission workflow shared by the CLI
// and the terminal UI.
//
// The flow is Validate → Uploader.Run (one request per file, in order) →
// Report. Validation failures reject the whole batch before anything is
// sent; every other failure is recorded against its own file and the loop
// moves on:
//
//   - KindFileNotFound: the path does not exist, no request is made
//   - KindNetwork: the request never got a response
//   - KindParse: the response body was not JSON
//   - KindApplication: status other than 200, or success=false
//
// Uploader.Submit additionally passes the credential to a CredentialSaver
// when, and only when, every file in the batch succeeded.
package upload
