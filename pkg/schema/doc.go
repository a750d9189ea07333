// Package schema parses file form documents into FormSchema values and loads
// those documents from package sources (directories, fs.FS trees, and tar
// archives).
//
// A document looks like:
//
//	<form xmlns="http://example.com/fileform" name="api">
//		<filename>config/api.inc.php</filename>
//		<filetype>2</filetype>
//		<fields>
//			<field name="apiKey">
//				<fieldtype>text</fieldtype>
//				<label>API key</label>
//				<label language="de">API-Schlüssel</label>
//			</field>
//		</fields>
//	</form>
package schema
